package testutil

import (
	"embed"
	"io/fs"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrations embed.FS

// SharedDSN returns a file: URI for a named in-memory SQLite database.
// Shared cache makes every connection with the same name land in the same
// database, so a factory under test and the assertion connection see the
// same state.
func SharedDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

// NewTestDB opens an in-memory SQLite DB, runs the scratch-schema goose
// migrations, and returns it with its DSN. Each test gets a unique
// database name to avoid cross-test interference.
func NewTestDB(t *testing.T) (*sqlx.DB, string) {
	t.Helper()

	dsn := SharedDSN(t.Name())
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	// Pin one connection so the shared in-memory database outlives
	// short-lived factory connections.
	if err := conn.Ping(); err != nil {
		t.Fatalf("ping sqlite: %v", err)
	}
	conn.SetMaxIdleConns(1)

	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("set goose dialect: %v", err)
	}

	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		t.Fatalf("sub migrations fs: %v", err)
	}

	goose.SetBaseFS(sub)
	if err := goose.Up(conn.DB, "."); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	return conn, dsn
}
