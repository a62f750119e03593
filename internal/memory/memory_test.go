package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alekseinovikov/tui-money/internal/core"
)

func category(t *testing.T, name string) core.Category {
	t.Helper()
	c, err := core.NewCategory(name)
	require.NoError(t, err)
	return c
}

func TestStoreMatchesRepositoryContract(t *testing.T) {
	store := New()
	ctx := context.Background()

	saved, err := store.Add(ctx, core.NewEntry{
		Kind:       core.Expense,
		Amount:     core.Cents(500),
		Category:   category(t, "food"),
		OccurredOn: core.NewDate(2024, 1, 10),
	})
	require.NoError(t, err)
	_, err = store.Add(ctx, core.NewEntry{
		Kind:       core.Income,
		Amount:     core.Cents(2500),
		Category:   category(t, "salary"),
		OccurredOn: core.NewDate(2024, 1, 15),
	})
	require.NoError(t, err)

	all, err := store.List(ctx, core.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	require.Equal(t, "salary", all[0].Category.String())

	food, err := store.List(ctx, core.EntryFilter{Category: category(t, "food")})
	require.NoError(t, err)
	require.Len(t, food, 1)
	require.Equal(t, saved, food[0])

	bounded, err := store.List(ctx, core.EntryFilter{
		From: core.NewDate(2024, 1, 10),
		To:   core.NewDate(2024, 1, 10),
	})
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	require.Equal(t, saved.ID, bounded[0].ID)
}

func TestStoreUsers(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.CreateUser(ctx, "alice", "pw123")
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, "alice", "other")
	require.ErrorIs(t, err, core.ErrStorage)

	match, err := store.VerifyUser(ctx, "alice", "pw123")
	require.NoError(t, err)
	require.NotNil(t, match)

	noMatch, err := store.VerifyUser(ctx, "alice", "wrong")
	require.NoError(t, err)
	require.Nil(t, noMatch)

	unknown, err := store.VerifyUser(ctx, "bob", "anything")
	require.NoError(t, err)
	require.Nil(t, unknown)

	_, err = store.CreateUser(ctx, "bob", "pw")
	require.NoError(t, err)
	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, users)
}
