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

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// SQLiteEmployeeRepo implements EmployeeRepo using a SQLite database.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

// NewSQLiteEmployeeRepo creates a new SQLiteEmployeeRepo.
func NewSQLiteEmployeeRepo(db db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: db}
}

const employeeColumns = `number, name, user_name, is_admin, created_at, updated_at`

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.Number,
		e.Name,
		e.UserName,
		boolToInt(e.IsAdmin),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("employee %d (%s): %w", e.Number, e.UserName, ErrConflict)
		}
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByNumber(ctx context.Context, number int) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE number = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, number))
}

func (r *SQLiteEmployeeRepo) GetByUserName(ctx context.Context, userName string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_name = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userName))
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

func (r *SQLiteEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	query := `UPDATE employees SET name = ?, user_name = ?, is_admin = ?, updated_at = ? WHERE number = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Name,
		e.UserName,
		boolToInt(e.IsAdmin),
		e.UpdatedAt.UTC().Format(time.RFC3339),
		e.Number,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user name %s: %w", e.UserName, ErrConflict)
		}
		return fmt.Errorf("updating employee: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Sprintf("employee %d", e.Number))
}

func (r *SQLiteEmployeeRepo) Delete(ctx context.Context, number int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE number = ?`, number)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Sprintf("employee %d", number))
}

func (r *SQLiteEmployeeRepo) CountAdmins(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE is_admin = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting administrators: %w", err)
	}
	return n, nil
}

func (r *SQLiteEmployeeRepo) scanOne(row *sql.Row) (*domain.Employee, error) {
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	return e, nil
}

func scanEmployee(s rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	var isAdmin int
	var createdAtStr, updatedAtStr string
	if err := s.Scan(&e.Number, &e.Name, &e.UserName, &isAdmin, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}
	e.IsAdmin = intToBool(isAdmin)

	var err error
	if e.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &e, nil
}
