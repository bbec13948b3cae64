package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
)

// SQLiteTimesheetRowRepo implements TimesheetRowRepo using a SQLite database.
// Hours are stored as the row's packed value.
type SQLiteTimesheetRowRepo struct {
	db db.DBTX
}

// NewSQLiteTimesheetRowRepo creates a new SQLiteTimesheetRowRepo.
func NewSQLiteTimesheetRowRepo(db db.DBTX) *SQLiteTimesheetRowRepo {
	return &SQLiteTimesheetRowRepo{db: db}
}

func (r *SQLiteTimesheetRowRepo) ListByTimesheet(ctx context.Context, timesheetID int64) ([]*domain.TimesheetRow, error) {
	query := `SELECT project_id, work_package_id, notes, packed_hours
		FROM timesheet_rows WHERE timesheet_id = ? ORDER BY position, project_id, work_package_id`
	rows, err := r.db.QueryContext(ctx, query, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("listing timesheet rows: %w", err)
	}
	defer rows.Close()

	out := []*domain.TimesheetRow{}
	for rows.Next() {
		var (
			projectID int
			packed    int64
			row       domain.TimesheetRow
		)
		if err := rows.Scan(&projectID, &row.WorkPackageID, &row.Notes, &packed); err != nil {
			return nil, fmt.Errorf("scanning timesheet row: %w", err)
		}
		if err := row.SetProjectID(projectID); err != nil {
			return nil, fmt.Errorf("%w: timesheet %d: %w", ErrCorruptRow, timesheetID, err)
		}
		if err := row.SetPackedHours(packed); err != nil {
			return nil, fmt.Errorf("%w: timesheet %d project %d %q: %w", ErrCorruptRow, timesheetID, projectID, row.WorkPackageID, err)
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timesheet rows: %w", err)
	}
	return out, nil
}

// ReplaceAll swaps the stored rows for rows, keeping their order. Callers
// run it inside a transaction.
func (r *SQLiteTimesheetRowRepo) ReplaceAll(ctx context.Context, timesheetID int64, rows []*domain.TimesheetRow) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM timesheet_rows WHERE timesheet_id = ?`, timesheetID); err != nil {
		return fmt.Errorf("clearing timesheet rows: %w", err)
	}
	for i, row := range rows {
		if err := r.insert(ctx, timesheetID, i, row); err != nil {
			return err
		}
	}
	return nil
}

// Add appends rows after the ones already stored.
func (r *SQLiteTimesheetRowRepo) Add(ctx context.Context, timesheetID int64, rows ...*domain.TimesheetRow) error {
	var next int
	query := `SELECT COALESCE(MAX(position) + 1, 0) FROM timesheet_rows WHERE timesheet_id = ?`
	if err := r.db.QueryRowContext(ctx, query, timesheetID).Scan(&next); err != nil {
		return fmt.Errorf("reading next row position: %w", err)
	}
	for i, row := range rows {
		if err := r.insert(ctx, timesheetID, next+i, row); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteTimesheetRowRepo) CountByTimesheet(ctx context.Context, timesheetID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM timesheet_rows WHERE timesheet_id = ?`, timesheetID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting timesheet rows: %w", err)
	}
	return n, nil
}

func (r *SQLiteTimesheetRowRepo) insert(ctx context.Context, timesheetID int64, position int, row *domain.TimesheetRow) error {
	query := `INSERT INTO timesheet_rows (timesheet_id, position, project_id, work_package_id, notes, packed_hours)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		timesheetID,
		position,
		row.ProjectID(),
		row.WorkPackageID,
		row.Notes,
		row.PackedHours(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("row for project %d work package %q: %w", row.ProjectID(), row.WorkPackageID, ErrConflict)
		}
		return fmt.Errorf("inserting timesheet row: %w", err)
	}
	return nil
}
