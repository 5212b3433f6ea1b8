// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"codeberg.org/oliverandrich/kingcooking/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateScheduleEntry(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice", "pw1")

	entry, err := repo.CreateScheduleEntry(ctx, user.ID, "Pasta", "2026-09-05", "18:30")

	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, user.ID, entry.UserID)
	assert.Equal(t, "Pasta", entry.RecipeName)
	assert.Equal(t, "2026-09-05", entry.ScheduledOn)
}

func TestListScheduleEntries_ScopedToOwner(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice", "pw1")
	bob := testutil.NewTestUser(t, repo, "bob", "pw2")

	_, err := repo.CreateScheduleEntry(ctx, alice.ID, "Pasta", "2026-09-05", "18:30")
	require.NoError(t, err)
	_, err = repo.CreateScheduleEntry(ctx, bob.ID, "Stew", "2026-09-06", "12:00")
	require.NoError(t, err)

	entries, err := repo.ListScheduleEntries(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Pasta", entries[0].RecipeName)
}

func TestUpdateScheduleEntry(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice", "pw1")
	entry, err := repo.CreateScheduleEntry(ctx, user.ID, "Pasta", "2026-09-05", "18:30")
	require.NoError(t, err)

	err = repo.UpdateScheduleEntry(ctx, user.ID, entry.ID, "Lasagne", "2026-09-06", "19:00")
	require.NoError(t, err)

	entries, err := repo.ListScheduleEntries(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Lasagne", entries[0].RecipeName)
}

func TestDeleteScheduleEntry_WrongOwner(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice", "pw1")
	bob := testutil.NewTestUser(t, repo, "bob", "pw2")

	entry, err := repo.CreateScheduleEntry(ctx, alice.ID, "Pasta", "2026-09-05", "18:30")
	require.NoError(t, err)

	err = repo.DeleteScheduleEntry(ctx, bob.ID, entry.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	entries, err := repo.ListScheduleEntries(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
