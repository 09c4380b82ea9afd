package testutil

import (
	"database/sql"
	"io/fs"
	"sort"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/arithmetica/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	migrations, err := fs.Glob(db.Migrations(), "migrations/*.sql")
	require.NoError(t, err)
	sort.Strings(migrations)

	for _, migration := range migrations {
		sqlBytes, err := fs.ReadFile(db.Migrations(), migration)
		require.NoError(t, err, "failed to read migration %s", migration)

		_, err = conn.Exec(string(sqlBytes))
		require.NoError(t, err, "failed to apply migration %s", migration)
	}

	return conn
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
