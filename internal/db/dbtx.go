package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// DBTX is what repositories query through: the pool for standalone reads,
// or a *sql.Tx handed out by a UnitOfWork.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// ErrBusy is returned when SQLite gave up waiting for a lock held by
// another connection. The operation may be retried.
var ErrBusy = errors.New("database busy")

// IsBusy reports whether err is a SQLite lock timeout.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBusy) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "SQLITE_LOCKED") ||
		strings.Contains(msg, "database is locked")
}

func classify(err error) error {
	if err == nil || errors.Is(err, ErrBusy) || !IsBusy(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrBusy, err)
}
