package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		number     INTEGER PRIMARY KEY CHECK(number > 0),
		name       TEXT NOT NULL,
		user_name  TEXT NOT NULL UNIQUE,
		is_admin   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS credentials (
		employee_number INTEGER PRIMARY KEY REFERENCES employees(number) ON DELETE CASCADE,
		user_name       TEXT NOT NULL UNIQUE,
		password_hash   TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS auth_tokens (
		token           TEXT PRIMARY KEY,
		employee_number INTEGER NOT NULL REFERENCES employees(number) ON DELETE CASCADE,
		created_at      TEXT NOT NULL,
		expires_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_auth_tokens_employee ON auth_tokens(employee_number)`,
	`CREATE INDEX IF NOT EXISTS idx_auth_tokens_expires ON auth_tokens(expires_at)`,

	`CREATE TABLE IF NOT EXISTS timesheets (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_number INTEGER NOT NULL REFERENCES employees(number) ON DELETE CASCADE,
		end_date        TEXT NOT NULL,
		overtime        INTEGER NOT NULL DEFAULT 0 CHECK(overtime >= 0),
		flextime        INTEGER NOT NULL DEFAULT 0 CHECK(flextime >= 0),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE(employee_number, end_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timesheets_employee ON timesheets(employee_number)`,
	`CREATE INDEX IF NOT EXISTS idx_timesheets_end_date ON timesheets(end_date)`,

	`CREATE TABLE IF NOT EXISTS timesheet_rows (
		timesheet_id    INTEGER NOT NULL REFERENCES timesheets(id) ON DELETE CASCADE,
		position        INTEGER NOT NULL DEFAULT 0,
		project_id      INTEGER NOT NULL CHECK(project_id >= 0),
		work_package_id TEXT NOT NULL DEFAULT '',
		notes           TEXT NOT NULL DEFAULT '',
		packed_hours    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (timesheet_id, project_id, work_package_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timesheet_rows_position ON timesheet_rows(timesheet_id, position)`,

	// Submission tracking
	`ALTER TABLE timesheets ADD COLUMN submitted_at TEXT`,
}
