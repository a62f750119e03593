package core

import "context"

// Capability interfaces consumed by the presentation layer. One concrete
// implementation (storage.SQLiteRepository) serves production; tests and
// the UI substitute the in-memory store behind the same interfaces.
type (
	EntryRepository interface {
		// Add persists a validated entry and returns it with its
		// storage-assigned identifier. Callers run Validate first.
		Add(ctx context.Context, entry NewEntry) (Entry, error)

		// List returns all entries matching the filter, newest first
		// (occurred-on descending, id descending as tie-break). An empty
		// result is an empty slice, not an error.
		List(ctx context.Context, filter EntryFilter) ([]Entry, error)
	}

	UserRepository interface {
		// CreateUser stores a new user with a salted password hash.
		// Username uniqueness is enforced by storage; a duplicate
		// surfaces as ErrStorage.
		CreateUser(ctx context.Context, username, password string) (User, error)

		// VerifyUser checks credentials. An unknown username and a wrong
		// password are both reported as (nil, nil) so callers cannot
		// distinguish which one failed.
		VerifyUser(ctx context.Context, username, password string) (*User, error)

		// ListUsers returns all usernames in lexicographic order.
		ListUsers(ctx context.Context) ([]string, error)
	}

	// Repository is the full persistence capability handed to the UI.
	Repository interface {
		EntryRepository
		UserRepository
		Close() error
	}
)
