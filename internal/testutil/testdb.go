package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/timesheet/internal/db"
)

type dbConfig struct {
	onDisk bool
}

// DBOption configures NewTestDB.
type DBOption func(*dbConfig)

// OnDisk backs the test database with a file in the test's temp dir, so
// pooled connections and DSN pragmas behave as they do in production.
func OnDisk() DBOption {
	return func(c *dbConfig) { c.onDisk = true }
}

// NewTestDB opens a migrated timesheet database, in memory unless OnDisk is
// given, and closes it when the test completes.
func NewTestDB(t *testing.T, opts ...DBOption) *sql.DB {
	t.Helper()
	cfg := dbConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	path := ":memory:"
	if cfg.onDisk {
		path = filepath.Join(t.TempDir(), "timesheet.db")
	}
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
