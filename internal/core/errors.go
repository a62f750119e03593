package core

import "errors"

// The repository layer classifies every failure into one of three kinds.
// Callers match with errors.Is; the wrapped message carries the detail.
var (
	// ErrStorage covers any failure originating from the database engine:
	// I/O, constraint violations, malformed queries. Never retried here.
	ErrStorage = errors.New("storage failure")

	// ErrNotFound is reserved for point-lookups that expect exactly one
	// result and find none. List operations return empty slices instead.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidData marks either caller input that fails validation or a
	// stored value that violates the expected shape (bad kind tag,
	// unparsable date). The latter means corrupted or externally edited
	// storage, not a normal runtime condition.
	ErrInvalidData = errors.New("invalid data")
)
