package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
)

// SQLiteTokenRepo implements TokenRepo using a SQLite database.
type SQLiteTokenRepo struct {
	db db.DBTX
}

// NewSQLiteTokenRepo creates a new SQLiteTokenRepo.
func NewSQLiteTokenRepo(db db.DBTX) *SQLiteTokenRepo {
	return &SQLiteTokenRepo{db: db}
}

func (r *SQLiteTokenRepo) Create(ctx context.Context, t *domain.AuthToken) error {
	query := `INSERT INTO auth_tokens (token, employee_number, created_at, expires_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.Token,
		t.EmployeeNumber,
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.ExpiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting auth token: %w", err)
	}
	return nil
}

func (r *SQLiteTokenRepo) GetEmployeeNumber(ctx context.Context, token string, now time.Time) (int, error) {
	// RFC3339 in UTC sorts lexically.
	query := `SELECT employee_number FROM auth_tokens WHERE token = ? AND expires_at > ?`
	var number int
	err := r.db.QueryRowContext(ctx, query, token, now.UTC().Format(time.RFC3339)).Scan(&number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("auth token: %w", ErrNotFound)
		}
		return 0, fmt.Errorf("looking up auth token: %w", err)
	}
	return number, nil
}

func (r *SQLiteTokenRepo) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token = ?`, token); err != nil {
		return fmt.Errorf("deleting auth token: %w", err)
	}
	return nil
}

func (r *SQLiteTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE expires_at <= ?`, now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("deleting expired auth tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}
