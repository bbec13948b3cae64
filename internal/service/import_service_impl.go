package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/importer"
	"github.com/alexanderramin/timesheet/internal/repository"
)

type importService struct {
	employees repository.EmployeeRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewImportService(employees repository.EmployeeRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		employees: employees,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema stores every week of the schema in one transaction; a week
// that already exists aborts the whole import.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{"employee": schema.Employee, "weeks": len(schema.Weeks)}
	defer observe(ctx, s.observer, "import-timesheets", time.Now().UTC(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	employee, err := s.employees.GetByNumber(ctx, schema.Employee)
	if err != nil {
		return nil, fmt.Errorf("employee %d: %w", schema.Employee, err)
	}

	sheets, err := importer.Convert(schema, employee)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		for _, ts := range sheets {
			if err := ensureWeekFree(ctx, r.timesheets, employee.Number, ts.EndDate(), 0); err != nil {
				return err
			}
			if err := r.timesheets.Create(ctx, ts); err != nil {
				return fmt.Errorf("creating week ending %s: %w", ts.WeekEnding(), mapWeekConflict(err))
			}
			if err := r.rows.ReplaceAll(ctx, ts.ID, ts.Details); err != nil {
				return fmt.Errorf("storing rows for week ending %s: %w", ts.WeekEnding(), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ImportResult{Employee: employee, Timesheets: sheets}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, msg)
}
