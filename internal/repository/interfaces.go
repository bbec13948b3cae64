package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByNumber(ctx context.Context, number int) (*domain.Employee, error)
	GetByUserName(ctx context.Context, userName string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, number int) error
	CountAdmins(ctx context.Context) (int, error)
}

type CredentialsRepo interface {
	Upsert(ctx context.Context, c *domain.Credentials) error
	GetByUserName(ctx context.Context, userName string) (*domain.Credentials, error)
	GetByEmployeeNumber(ctx context.Context, number int) (*domain.Credentials, error)
	Delete(ctx context.Context, number int) error
}

type TokenRepo interface {
	Create(ctx context.Context, t *domain.AuthToken) error
	// GetEmployeeNumber resolves a token that has not expired at now.
	GetEmployeeNumber(ctx context.Context, token string, now time.Time) (int, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TimesheetRepo stores timesheet headers. Rows live in TimesheetRowRepo;
// loaded timesheets have an empty Details slice.
type TimesheetRepo interface {
	Create(ctx context.Context, ts *domain.Timesheet) error
	GetByID(ctx context.Context, id int64) (*domain.Timesheet, error)
	FindByWeek(ctx context.Context, employeeNumber int, endDate time.Time) (*domain.Timesheet, error)
	LatestByEmployee(ctx context.Context, employeeNumber int) (*domain.Timesheet, error)
	List(ctx context.Context) ([]*domain.Timesheet, error)
	ListByEmployee(ctx context.Context, employeeNumber int) ([]*domain.Timesheet, error)
	Update(ctx context.Context, ts *domain.Timesheet) error
	Delete(ctx context.Context, id int64) error
}

type TimesheetRowRepo interface {
	ListByTimesheet(ctx context.Context, timesheetID int64) ([]*domain.TimesheetRow, error)
	ReplaceAll(ctx context.Context, timesheetID int64, rows []*domain.TimesheetRow) error
	Add(ctx context.Context, timesheetID int64, rows ...*domain.TimesheetRow) error
	CountByTimesheet(ctx context.Context, timesheetID int64) (int, error)
}
