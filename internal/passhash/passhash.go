// Package passhash hashes and verifies passwords with Argon2id.
//
// Hashes are stored as PHC strings carrying the parameters and the salt,
// so stored hashes stay verifiable if the defaults below ever change.
package passhash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	timeCost    = 3
	memoryKiB   = 64 * 1024
	parallelism = 2
	saltLen     = 16
	keyLen      = 32
)

// ErrMalformedHash indicates a stored hash that is not a valid Argon2id
// PHC string. It signals corrupted storage, not a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

// Hash derives an Argon2id hash of password under a freshly generated
// random salt and returns it PHC-encoded.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, timeCost, memoryKiB, parallelism, keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryKiB, timeCost, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Check verifies password against an encoded hash. A mismatch returns
// (false, nil); only a structurally invalid hash returns an error.
func Check(password, encoded string) (bool, error) {
	memory, time, threads, salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}
	candidate := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1, nil
}

func decode(encoded string) (memory, time uint32, threads uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: want $argon2id$...", ErrMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: bad version segment", ErrMalformedHash)
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: bad parameter segment", ErrMalformedHash)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: bad salt encoding", ErrMalformedHash)
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: bad key encoding", ErrMalformedHash)
	}
	if len(salt) == 0 || len(key) == 0 {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: empty salt or key", ErrMalformedHash)
	}
	return memory, time, threads, salt, key, nil
}
