// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/kingcooking/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInMemory(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping())
}

func TestOpenRunsMigrations(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tables := []string{
		"users", "sessions", "reset_tokens",
		"recipes", "ingredients", "favorites", "schedule_entries",
	}
	for _, table := range tables {
		var count int
		err := db.GetContext(context.Background(), &count,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "expected table %s to exist", table)
	}
}

func TestOpenEnforcesUniqueUsername(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES ('alice', 'x')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES ('alice', 'y')`)
	assert.Error(t, err)
}
