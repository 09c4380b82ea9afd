package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/arithmetica/internal/db"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arithmetica.db")
	ctx := context.Background()

	first, err := db.Open(path)
	require.NoError(t, err)

	var count int
	require.NoError(t, first.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 1, count)

	_, err = first.ExecContext(ctx, `INSERT INTO kv_store (key, value) VALUES ('leaderboard', '[3]')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := db.Open(path)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, second.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 1, count, "reopening does not reapply migrations")

	var value string
	require.NoError(t, second.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = 'leaderboard'`).Scan(&value))
	assert.Equal(t, "[3]", value)
}
