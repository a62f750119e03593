package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alekseinovikov/tui-money/internal/core"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tui-money.db")
	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func category(t *testing.T, name string) core.Category {
	t.Helper()
	c, err := core.NewCategory(name)
	require.NoError(t, err)
	return c
}

func addEntry(t *testing.T, repo *SQLiteRepository, kind core.EntryKind, cents int64, cat string, day core.Date) core.Entry {
	t.Helper()
	entry := core.NewEntry{
		Kind:       kind,
		Amount:     core.Cents(cents),
		Category:   category(t, cat),
		OccurredOn: day,
	}
	require.NoError(t, entry.Validate())
	saved, err := repo.Add(context.Background(), entry)
	require.NoError(t, err)
	return saved
}

func TestAddAndListEntries(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	entry := core.NewEntry{
		Kind:       core.Expense,
		Amount:     core.Cents(1234),
		Category:   category(t, "food"),
		Note:       "lunch",
		OccurredOn: core.NewDate(2024, 1, 20),
	}
	saved, err := repo.Add(ctx, entry)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.Equal(t, entry.Kind, saved.Kind)
	require.Equal(t, entry.Amount, saved.Amount)
	require.Equal(t, entry.Category, saved.Category)
	require.Equal(t, entry.Note, saved.Note)
	require.True(t, saved.OccurredOn.Equal(entry.OccurredOn.Time))

	entries, err := repo.List(ctx, core.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, saved, entries[0])
}

func TestListEmptyIsNotAnError(t *testing.T) {
	repo, _ := newTestRepo(t)

	entries, err := repo.List(context.Background(), core.EntryFilter{})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestListFiltersByCategory(t *testing.T) {
	repo, _ := newTestRepo(t)

	addEntry(t, repo, core.Expense, 500, "food", core.NewDate(2024, 1, 10))
	addEntry(t, repo, core.Income, 2500, "salary", core.NewDate(2024, 1, 15))
	addEntry(t, repo, core.Expense, 700, "food", core.NewDate(2024, 2, 1))

	entries, err := repo.List(context.Background(), core.EntryFilter{Category: category(t, "food")})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.Equal(t, "food", e.Category.String())
	}
}

func TestListDateBoundsAreInclusive(t *testing.T) {
	repo, _ := newTestRepo(t)

	d1 := core.NewDate(2024, 1, 1)
	d2 := core.NewDate(2024, 1, 10)
	d3 := core.NewDate(2024, 1, 20)
	addEntry(t, repo, core.Expense, 100, "food", d1)
	addEntry(t, repo, core.Expense, 200, "food", d2)
	addEntry(t, repo, core.Expense, 300, "food", d3)

	entries, err := repo.List(context.Background(), core.EntryFilter{From: d1, To: d2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Both boundary dates included, d3 excluded.
	require.Equal(t, int64(200), entries[0].Amount.Cents)
	require.Equal(t, int64(100), entries[1].Amount.Cents)
}

func TestListOrdersNewestFirst(t *testing.T) {
	repo, _ := newTestRepo(t)

	first := addEntry(t, repo, core.Expense, 100, "food", core.NewDate(2024, 3, 5))
	second := addEntry(t, repo, core.Expense, 200, "food", core.NewDate(2024, 3, 5))
	older := addEntry(t, repo, core.Expense, 300, "food", core.NewDate(2024, 2, 1))
	newest := addEntry(t, repo, core.Expense, 400, "food", core.NewDate(2024, 4, 1))

	entries, err := repo.List(context.Background(), core.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	// Date descending; same-date entries most-recently-inserted first.
	require.Equal(t, newest.ID, entries[0].ID)
	require.Equal(t, second.ID, entries[1].ID)
	require.Equal(t, first.ID, entries[2].ID)
	require.Equal(t, older.ID, entries[3].ID)
}

func TestListSurfacesCorruptKindAsInvalidData(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.db.Exec(
		`INSERT INTO entries (kind, amount_cents, category, note, occurred_on)
		 VALUES ('refund', 100, 'food', NULL, '2024-01-01')`)
	require.NoError(t, err)

	_, err = repo.List(context.Background(), core.EntryFilter{})
	require.ErrorIs(t, err, core.ErrInvalidData)
}

func TestListSurfacesCorruptDateAsInvalidData(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.db.Exec(
		`INSERT INTO entries (kind, amount_cents, category, note, occurred_on)
		 VALUES ('expense', 100, 'food', NULL, '01/02/2024')`)
	require.NoError(t, err)

	_, err = repo.List(context.Background(), core.EntryFilter{})
	require.ErrorIs(t, err, core.ErrInvalidData)
}

func TestCreateAndVerifyUser(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "alice", "pw123")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotZero(t, user.ID)

	verified, err := repo.VerifyUser(ctx, "alice", "pw123")
	require.NoError(t, err)
	require.NotNil(t, verified)
	require.Equal(t, user, *verified)

	// Wrong password and unknown user are the same no-match outcome.
	wrongPass, err := repo.VerifyUser(ctx, "alice", "wrong")
	require.NoError(t, err)
	unknown, err2 := repo.VerifyUser(ctx, "bob", "anything")
	require.NoError(t, err2)
	require.Equal(t, wrongPass, unknown)
	require.Nil(t, wrongPass)
}

func TestCreateUserDuplicateSurfacesStorage(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, "alice", "pw123")
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, "alice", "other")
	require.ErrorIs(t, err, core.ErrStorage)
}

func TestCreateUserStoresOnlyHash(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.CreateUser(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	var stored string
	require.NoError(t, repo.db.QueryRow(
		`SELECT password_hash FROM users WHERE username = 'alice'`).Scan(&stored))
	require.NotContains(t, stored, "pw123")
	require.Contains(t, stored, "$argon2id$")
}

func TestVerifyUserCorruptHashSurfacesStorage(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, "alice", "pw123")
	require.NoError(t, err)

	_, err = repo.db.Exec(`UPDATE users SET password_hash = 'garbage' WHERE username = 'alice'`)
	require.NoError(t, err)

	_, err = repo.VerifyUser(ctx, "alice", "pw123")
	require.ErrorIs(t, err, core.ErrStorage)
}

func TestListUsersSortedWithoutPasswordMaterial(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"charlie", "alice", "bob"} {
		_, err := repo.CreateUser(ctx, name, "pw")
		require.NoError(t, err)
	}

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob", "charlie"}, users)
}
