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

// SQLiteCredentialsRepo implements CredentialsRepo using a SQLite database.
type SQLiteCredentialsRepo struct {
	db db.DBTX
}

// NewSQLiteCredentialsRepo creates a new SQLiteCredentialsRepo.
func NewSQLiteCredentialsRepo(db db.DBTX) *SQLiteCredentialsRepo {
	return &SQLiteCredentialsRepo{db: db}
}

func (r *SQLiteCredentialsRepo) Upsert(ctx context.Context, c *domain.Credentials) error {
	query := `INSERT INTO credentials (employee_number, user_name, password_hash, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(employee_number) DO UPDATE SET
			user_name = excluded.user_name,
			password_hash = excluded.password_hash,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		c.EmployeeNumber,
		c.UserName,
		c.PasswordHash,
		c.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("credentials for %s: %w", c.UserName, ErrConflict)
		}
		return fmt.Errorf("upserting credentials: %w", err)
	}
	return nil
}

func (r *SQLiteCredentialsRepo) GetByUserName(ctx context.Context, userName string) (*domain.Credentials, error) {
	query := `SELECT employee_number, user_name, password_hash, updated_at FROM credentials WHERE user_name = ?`
	return r.scan(r.db.QueryRowContext(ctx, query, userName))
}

func (r *SQLiteCredentialsRepo) GetByEmployeeNumber(ctx context.Context, number int) (*domain.Credentials, error) {
	query := `SELECT employee_number, user_name, password_hash, updated_at FROM credentials WHERE employee_number = ?`
	return r.scan(r.db.QueryRowContext(ctx, query, number))
}

func (r *SQLiteCredentialsRepo) Delete(ctx context.Context, number int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE employee_number = ?`, number)
	if err != nil {
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Sprintf("credentials for employee %d", number))
}

func (r *SQLiteCredentialsRepo) scan(row *sql.Row) (*domain.Credentials, error) {
	var c domain.Credentials
	var updatedAtStr string
	if err := row.Scan(&c.EmployeeNumber, &c.UserName, &c.PasswordHash, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("credentials: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning credentials: %w", err)
	}
	t, err := parseTimestamp("updated_at", updatedAtStr)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt = t
	return &c, nil
}
