package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/importer"
)

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee, password string) error
	Get(ctx context.Context, number int) (*domain.Employee, error)
	GetByUserName(ctx context.Context, userName string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, number int) error
	ChangePassword(ctx context.Context, number int, password string) error
	// EnsureAdmin creates an administrator when no employees exist yet.
	EnsureAdmin(ctx context.Context, userName, password string) (bool, error)
}

type AuthService interface {
	Login(ctx context.Context, userName, password string) (*domain.AuthToken, error)
	Authenticate(ctx context.Context, token string) (*domain.Employee, error)
	Logout(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int64, error)
	// Authorize allows admins to act on anyone and users only on themselves.
	Authorize(actor *domain.Employee, employeeNumber int) error
	RequireAdmin(actor *domain.Employee) error
}

type TimesheetService interface {
	Create(ctx context.Context, ts *domain.Timesheet) error
	Get(ctx context.Context, id int64) (*domain.Timesheet, error)
	Current(ctx context.Context, employeeNumber int) (*domain.Timesheet, error)
	FindByWeek(ctx context.Context, employeeNumber int, weekEnding time.Time) (*domain.Timesheet, error)
	List(ctx context.Context) ([]*domain.Timesheet, error)
	ListByEmployee(ctx context.Context, employeeNumber int) ([]*domain.Timesheet, error)
	Update(ctx context.Context, ts *domain.Timesheet) error
	AddRows(ctx context.Context, id int64, rows ...*domain.TimesheetRow) (*domain.Timesheet, error)
	ReplaceRows(ctx context.Context, id int64, rows []*domain.TimesheetRow) (*domain.Timesheet, error)
	Submit(ctx context.Context, id int64) (*domain.Timesheet, error)
	Reopen(ctx context.Context, id int64) (*domain.Timesheet, error)
	Delete(ctx context.Context, id int64) error
}

// ImportResult holds the outcome of a timesheet import.
type ImportResult struct {
	Employee   *domain.Employee
	Timesheets []*domain.Timesheet
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
