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

// SQLiteTimesheetRepo implements TimesheetRepo using a SQLite database.
type SQLiteTimesheetRepo struct {
	db db.DBTX
}

// NewSQLiteTimesheetRepo creates a new SQLiteTimesheetRepo.
func NewSQLiteTimesheetRepo(db db.DBTX) *SQLiteTimesheetRepo {
	return &SQLiteTimesheetRepo{db: db}
}

const timesheetSelect = `SELECT t.id, t.end_date, t.overtime, t.flextime, t.submitted_at,
		e.number, e.name, e.user_name, e.is_admin, e.created_at, e.updated_at
	FROM timesheets t
	JOIN employees e ON e.number = t.employee_number`

func (r *SQLiteTimesheetRepo) Create(ctx context.Context, ts *domain.Timesheet) error {
	if ts.Employee == nil {
		return fmt.Errorf("inserting timesheet: no employee")
	}
	now := nowUTC()
	query := `INSERT INTO timesheets (employee_number, end_date, overtime, flextime, submitted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		ts.Employee.Number,
		ts.WeekEnding(),
		ts.OvertimeDecihours(),
		ts.FlextimeDecihours(),
		nullableTimeToString(ts.SubmittedAt, time.RFC3339),
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("timesheet for employee %d week ending %s: %w", ts.Employee.Number, ts.WeekEnding(), ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("employee %d: %w", ts.Employee.Number, ErrNotFound)
		}
		return fmt.Errorf("inserting timesheet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading timesheet id: %w", err)
	}
	ts.ID = id
	return nil
}

func (r *SQLiteTimesheetRepo) GetByID(ctx context.Context, id int64) (*domain.Timesheet, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, timesheetSelect+` WHERE t.id = ?`, id))
}

func (r *SQLiteTimesheetRepo) FindByWeek(ctx context.Context, employeeNumber int, endDate time.Time) (*domain.Timesheet, error) {
	weekEnding := domain.FridayOnOrAfter(endDate).Format(domain.DateLayout)
	query := timesheetSelect + ` WHERE t.employee_number = ? AND t.end_date = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, employeeNumber, weekEnding))
}

func (r *SQLiteTimesheetRepo) LatestByEmployee(ctx context.Context, employeeNumber int) (*domain.Timesheet, error) {
	query := timesheetSelect + ` WHERE t.employee_number = ? ORDER BY t.end_date DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, employeeNumber))
}

func (r *SQLiteTimesheetRepo) List(ctx context.Context) ([]*domain.Timesheet, error) {
	rows, err := r.db.QueryContext(ctx, timesheetSelect+` ORDER BY t.end_date DESC, e.number`)
	if err != nil {
		return nil, fmt.Errorf("listing timesheets: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *SQLiteTimesheetRepo) ListByEmployee(ctx context.Context, employeeNumber int) ([]*domain.Timesheet, error) {
	query := timesheetSelect + ` WHERE t.employee_number = ? ORDER BY t.end_date DESC`
	rows, err := r.db.QueryContext(ctx, query, employeeNumber)
	if err != nil {
		return nil, fmt.Errorf("listing timesheets by employee: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *SQLiteTimesheetRepo) Update(ctx context.Context, ts *domain.Timesheet) error {
	query := `UPDATE timesheets SET end_date = ?, overtime = ?, flextime = ?, submitted_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		ts.WeekEnding(),
		ts.OvertimeDecihours(),
		ts.FlextimeDecihours(),
		nullableTimeToString(ts.SubmittedAt, time.RFC3339),
		nowUTC(),
		ts.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("timesheet week ending %s: %w", ts.WeekEnding(), ErrConflict)
		}
		return fmt.Errorf("updating timesheet: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Sprintf("timesheet %d", ts.ID))
}

func (r *SQLiteTimesheetRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timesheets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting timesheet: %w", err)
	}
	return rowsAffectedOrNotFound(res, fmt.Sprintf("timesheet %d", id))
}

func (r *SQLiteTimesheetRepo) scanOne(row *sql.Row) (*domain.Timesheet, error) {
	ts, err := scanTimesheet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("timesheet: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning timesheet: %w", err)
	}
	return ts, nil
}

func (r *SQLiteTimesheetRepo) scanMany(rows *sql.Rows) ([]*domain.Timesheet, error) {
	var out []*domain.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning timesheet row: %w", err)
		}
		out = append(out, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timesheets: %w", err)
	}
	return out, nil
}

func scanTimesheet(s rowScanner) (*domain.Timesheet, error) {
	var (
		id                         int64
		endDateStr                 string
		overtime, flextime         int
		submittedAt                sql.NullString
		e                          domain.Employee
		isAdmin                    int
		createdAtStr, updatedAtStr string
	)
	err := s.Scan(&id, &endDateStr, &overtime, &flextime, &submittedAt,
		&e.Number, &e.Name, &e.UserName, &isAdmin, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}
	e.IsAdmin = intToBool(isAdmin)
	if e.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateLayout, endDateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}

	ts := domain.NewTimesheetFor(&e, endDate)
	ts.ID = id
	if err := ts.SetOvertimeDecihours(overtime); err != nil {
		return nil, err
	}
	if err := ts.SetFlextimeDecihours(flextime); err != nil {
		return nil, err
	}
	ts.SubmittedAt = parseNullableTime(submittedAt, time.RFC3339)
	return ts, nil
}
