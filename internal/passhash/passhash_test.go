package passhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	password := "correct horse battery staple"

	encoded, err := Hash(password)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := Check(password, encoded)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Check("wrong password", encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashGeneratesFreshSalt(t *testing.T) {
	password := "pw123"

	first, err := Hash(password)
	require.NoError(t, err)
	second, err := Hash(password)
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	// Both still verify despite distinct salts.
	for _, encoded := range []string{first, second} {
		ok, err := Check(password, encoded)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestCheckRejectsMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not a hash",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$a2V5", // wrong variant
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$a2V5", // wrong version
		"$argon2id$v=19$m=65536$c2FsdA$a2V5",         // bad parameter segment
		"$argon2id$v=19$m=65536,t=3,p=2$!!$a2V5",     // bad salt encoding
	}
	for _, encoded := range cases {
		_, err := Check("pw", encoded)
		require.ErrorIs(t, err, ErrMalformedHash, "hash %q", encoded)
	}
}
