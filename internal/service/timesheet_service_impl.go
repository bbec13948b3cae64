package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
)

type timesheetService struct {
	timesheets repository.TimesheetRepo
	uow        db.UnitOfWork
	now        func() time.Time
	observer   UseCaseObserver
}

func NewTimesheetService(
	timesheets repository.TimesheetRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TimesheetService {
	return &timesheetService{
		timesheets: timesheets,
		uow:        uow,
		now:        func() time.Time { return time.Now().UTC() },
		observer:   useCaseObserverOrNoop(observers),
	}
}

// txRepos holds repositories bound to one transaction.
type txRepos struct {
	timesheets repository.TimesheetRepo
	rows       repository.TimesheetRowRepo
}

func newTxRepos(tx db.DBTX) txRepos {
	return txRepos{
		timesheets: repository.NewSQLiteTimesheetRepo(tx),
		rows:       repository.NewSQLiteTimesheetRowRepo(tx),
	}
}

func (s *timesheetService) Create(ctx context.Context, ts *domain.Timesheet) (err error) {
	fields := map[string]any{"week_ending": ts.WeekEnding(), "rows": len(ts.Details)}
	defer observe(ctx, s.observer, "create-timesheet", time.Now().UTC(), fields, &err)

	if ts.Employee == nil {
		return fmt.Errorf("%w: timesheet has no employee", domain.ErrInvalidArgument)
	}
	fields["employee"] = ts.Employee.Number
	if err = checkRowCount(len(ts.Details)); err != nil {
		return err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		if err := ensureWeekFree(ctx, r.timesheets, ts.Employee.Number, ts.EndDate(), 0); err != nil {
			return err
		}
		if err := r.timesheets.Create(ctx, ts); err != nil {
			return mapWeekConflict(err)
		}
		return r.rows.ReplaceAll(ctx, ts.ID, ts.Details)
	})
	if err != nil {
		// The insert was rolled back along with its id.
		ts.ID = 0
	}
	return err
}

func (s *timesheetService) Get(ctx context.Context, id int64) (ts *domain.Timesheet, err error) {
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		ts, err = loadWithRows(ctx, newTxRepos(tx), id)
		return err
	})
	return ts, err
}

// Current returns the employee's timesheet with the latest end date.
func (s *timesheetService) Current(ctx context.Context, employeeNumber int) (*domain.Timesheet, error) {
	return s.readOne(ctx, func(ctx context.Context, r txRepos) (*domain.Timesheet, error) {
		return r.timesheets.LatestByEmployee(ctx, employeeNumber)
	})
}

func (s *timesheetService) FindByWeek(ctx context.Context, employeeNumber int, weekEnding time.Time) (*domain.Timesheet, error) {
	return s.readOne(ctx, func(ctx context.Context, r txRepos) (*domain.Timesheet, error) {
		return r.timesheets.FindByWeek(ctx, employeeNumber, weekEnding)
	})
}

func (s *timesheetService) List(ctx context.Context) ([]*domain.Timesheet, error) {
	return s.readMany(ctx, func(ctx context.Context, r txRepos) ([]*domain.Timesheet, error) {
		return r.timesheets.List(ctx)
	})
}

func (s *timesheetService) ListByEmployee(ctx context.Context, employeeNumber int) ([]*domain.Timesheet, error) {
	return s.readMany(ctx, func(ctx context.Context, r txRepos) ([]*domain.Timesheet, error) {
		return r.timesheets.ListByEmployee(ctx, employeeNumber)
	})
}

// Update stores the header fields and replaces the rows of an unsubmitted
// timesheet. The owning employee cannot change.
func (s *timesheetService) Update(ctx context.Context, ts *domain.Timesheet) (err error) {
	defer observe(ctx, s.observer, "update-timesheet", time.Now().UTC(), map[string]any{"timesheet": ts.ID}, &err)

	if err = checkRowCount(len(ts.Details)); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		existing, err := r.timesheets.GetByID(ctx, ts.ID)
		if err != nil {
			return err
		}
		if existing.IsSubmitted() {
			return fmt.Errorf("%w: week ending %s", ErrSubmitted, existing.WeekEnding())
		}
		if err := ensureWeekFree(ctx, r.timesheets, existing.Employee.Number, ts.EndDate(), ts.ID); err != nil {
			return err
		}
		ts.Employee = existing.Employee
		ts.SubmittedAt = nil
		if err := r.timesheets.Update(ctx, ts); err != nil {
			return mapWeekConflict(err)
		}
		return r.rows.ReplaceAll(ctx, ts.ID, ts.Details)
	})
}

func (s *timesheetService) AddRows(ctx context.Context, id int64, rows ...*domain.TimesheetRow) (ts *domain.Timesheet, err error) {
	defer observe(ctx, s.observer, "add-timesheet-rows", time.Now().UTC(), map[string]any{"timesheet": id, "rows": len(rows)}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		ts, err = loadEditable(ctx, r, id)
		if err != nil {
			return err
		}
		if err := checkRowCount(len(ts.Details) + len(rows)); err != nil {
			return err
		}
		if err := r.rows.Add(ctx, id, rows...); err != nil {
			return err
		}
		ts.Details = append(ts.Details, rows...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *timesheetService) ReplaceRows(ctx context.Context, id int64, rows []*domain.TimesheetRow) (ts *domain.Timesheet, err error) {
	defer observe(ctx, s.observer, "replace-timesheet-rows", time.Now().UTC(), map[string]any{"timesheet": id, "rows": len(rows)}, &err)

	if err = checkRowCount(len(rows)); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		ts, err = loadEditable(ctx, r, id)
		if err != nil {
			return err
		}
		if err := r.rows.ReplaceAll(ctx, id, rows); err != nil {
			return err
		}
		ts.Details = append([]*domain.TimesheetRow{}, rows...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// Submit hands in a balanced timesheet. Submitted timesheets are read-only
// until reopened.
func (s *timesheetService) Submit(ctx context.Context, id int64) (ts *domain.Timesheet, err error) {
	defer observe(ctx, s.observer, "submit-timesheet", time.Now().UTC(), map[string]any{"timesheet": id}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		ts, err = loadEditable(ctx, r, id)
		if err != nil {
			return err
		}
		if !ts.IsValid() {
			return fmt.Errorf("%w: total %.1f, overtime %.1f, flextime %.1f",
				ErrUnbalanced, ts.TotalHours(), ts.OvertimeHours(), ts.FlextimeHours())
		}
		now := s.now()
		ts.SubmittedAt = &now
		return r.timesheets.Update(ctx, ts)
	})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *timesheetService) Reopen(ctx context.Context, id int64) (ts *domain.Timesheet, err error) {
	defer observe(ctx, s.observer, "reopen-timesheet", time.Now().UTC(), map[string]any{"timesheet": id}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		ts, err = loadWithRows(ctx, r, id)
		if err != nil {
			return err
		}
		if !ts.IsSubmitted() {
			return fmt.Errorf("%w: week ending %s", ErrNotSubmitted, ts.WeekEnding())
		}
		ts.SubmittedAt = nil
		return r.timesheets.Update(ctx, ts)
	})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *timesheetService) Delete(ctx context.Context, id int64) (err error) {
	defer observe(ctx, s.observer, "delete-timesheet", time.Now().UTC(), map[string]any{"timesheet": id}, &err)
	return s.timesheets.Delete(ctx, id)
}

// readOne loads a header and its rows from one snapshot.
func (s *timesheetService) readOne(ctx context.Context, find func(context.Context, txRepos) (*domain.Timesheet, error)) (ts *domain.Timesheet, err error) {
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		ts, err = find(ctx, r)
		if err != nil {
			return err
		}
		ts.Details, err = r.rows.ListByTimesheet(ctx, ts.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *timesheetService) readMany(ctx context.Context, find func(context.Context, txRepos) ([]*domain.Timesheet, error)) (sheets []*domain.Timesheet, err error) {
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		sheets, err = find(ctx, r)
		if err != nil {
			return err
		}
		for _, ts := range sheets {
			if ts.Details, err = r.rows.ListByTimesheet(ctx, ts.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sheets, nil
}

func loadWithRows(ctx context.Context, r txRepos, id int64) (*domain.Timesheet, error) {
	ts, err := r.timesheets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := r.rows.ListByTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}
	ts.Details = rows
	return ts, nil
}

func loadEditable(ctx context.Context, r txRepos, id int64) (*domain.Timesheet, error) {
	ts, err := loadWithRows(ctx, r, id)
	if err != nil {
		return nil, err
	}
	if ts.IsSubmitted() {
		return nil, fmt.Errorf("%w: week ending %s", ErrSubmitted, ts.WeekEnding())
	}
	return ts, nil
}

// ensureWeekFree fails with ErrDuplicateWeek when the employee already has
// a timesheet for the week of endDate other than self.
func ensureWeekFree(ctx context.Context, timesheets repository.TimesheetRepo, employeeNumber int, endDate time.Time, self int64) error {
	found, err := timesheets.FindByWeek(ctx, employeeNumber, endDate)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if found.ID == self {
		return nil
	}
	return fmt.Errorf("%w: employee %d week ending %s (timesheet %d)", ErrDuplicateWeek, employeeNumber, found.WeekEnding(), found.ID)
}

func mapWeekConflict(err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("%w: %w", ErrDuplicateWeek, err)
	}
	return err
}

func checkRowCount(n int) error {
	if n > domain.MaxRows {
		return fmt.Errorf("%w: %d rows exceeds the limit of %d", ErrTooManyRows, n, domain.MaxRows)
	}
	return nil
}
