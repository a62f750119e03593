// Package memory provides an in-memory core.Repository for tests and for
// running the UI without a database file. It mirrors the SQLite
// repository's observable behavior, including ordering and the
// indistinguishable no-match on verification.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/alekseinovikov/tui-money/internal/core"
)

type user struct {
	id       int64
	username string
	password string
}

type Store struct {
	mu          sync.Mutex
	entries     []core.Entry
	users       map[string]user
	nextEntryID int64
	nextUserID  int64
}

var _ core.Repository = (*Store)(nil)

func New() *Store {
	return &Store{users: make(map[string]user)}
}

func (s *Store) Close() error { return nil }

func (s *Store) Add(_ context.Context, entry core.NewEntry) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEntryID++
	saved := core.Entry{
		ID:         core.EntryID(s.nextEntryID),
		Kind:       entry.Kind,
		Amount:     entry.Amount,
		Category:   entry.Category,
		Note:       entry.Note,
		OccurredOn: entry.OccurredOn,
	}
	s.entries = append(s.entries, saved)
	return saved, nil
}

func (s *Store) List(_ context.Context, filter core.EntryFilter) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Entry
	for _, e := range s.entries {
		if !filter.From.IsEmpty() && e.OccurredOn.Before(filter.From.Time) {
			continue
		}
		if !filter.To.IsEmpty() && e.OccurredOn.After(filter.To.Time) {
			continue
		}
		if !filter.Category.IsZero() && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredOn.Equal(out[j].OccurredOn.Time) {
			return out[i].OccurredOn.After(out[j].OccurredOn.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// CreateUser stores the password verbatim; this fake never outlives the
// process and exists so the UI and tests can run without Argon2 cost.
func (s *Store) CreateUser(_ context.Context, username, password string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return core.User{}, fmt.Errorf("%w: username %q already exists", core.ErrStorage, username)
	}
	s.nextUserID++
	s.users[username] = user{id: s.nextUserID, username: username, password: password}
	return core.User{ID: s.nextUserID, Username: username}, nil
}

func (s *Store) VerifyUser(_ context.Context, username, password string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok || u.password != password {
		return nil, nil
	}
	return &core.User{ID: u.id, Username: u.username}, nil
}

func (s *Store) ListUsers(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	usernames := make([]string, 0, len(s.users))
	for name := range s.users {
		usernames = append(usernames, name)
	}
	sort.Strings(usernames)
	return usernames, nil
}
