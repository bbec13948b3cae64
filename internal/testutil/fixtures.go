package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

var testEmployeeCounter atomic.Int64

// Employee options
type EmployeeOption func(*domain.Employee)

func AsAdmin() EmployeeOption {
	return func(e *domain.Employee) {
		e.IsAdmin = true
	}
}

func WithUserName(userName string) EmployeeOption {
	return func(e *domain.Employee) {
		e.UserName = userName
	}
}

func WithEmployeeNumber(n int) EmployeeOption {
	return func(e *domain.Employee) {
		e.Number = n
	}
}

func defaultUserName(name string, n int64) string {
	var letters []byte
	for _, c := range strings.ToLower(name) {
		if c >= 'a' && c <= 'z' && len(letters) < 8 {
			letters = append(letters, byte(c))
		}
	}
	if len(letters) == 0 {
		letters = []byte("emp")
	}
	return fmt.Sprintf("%s%d", letters, n)
}

// NewTestEmployee returns an employee with a unique number and user name.
func NewTestEmployee(name string, opts ...EmployeeOption) *domain.Employee {
	now := time.Now().UTC().Truncate(time.Second)
	n := testEmployeeCounter.Add(1)
	e := &domain.Employee{
		Number:    int(1000 + n),
		Name:      name,
		UserName:  defaultUserName(name, n),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timesheet options
type TimesheetOption func(*domain.Timesheet)

// WithRow appends a row charging hours (Saturday first) to the timesheet.
// It panics on out-of-range input.
func WithRow(projectID int, workPackageID string, hours ...float64) TimesheetOption {
	return func(ts *domain.Timesheet) {
		row, err := domain.NewTimesheetRow(projectID, workPackageID, "", hours...)
		if err != nil {
			panic(fmt.Sprintf("testutil.WithRow: %v", err))
		}
		ts.Details = append(ts.Details, row)
	}
}

// WithFullWeek appends a row charging eight hours Monday through Friday.
func WithFullWeek(projectID int, workPackageID string) TimesheetOption {
	return WithRow(projectID, workPackageID, 0, 0, 8, 8, 8, 8, 8)
}

func WithOvertime(decihours int) TimesheetOption {
	return func(ts *domain.Timesheet) {
		if err := ts.SetOvertimeDecihours(decihours); err != nil {
			panic(fmt.Sprintf("testutil.WithOvertime: %v", err))
		}
	}
}

func WithFlextime(decihours int) TimesheetOption {
	return func(ts *domain.Timesheet) {
		if err := ts.SetFlextimeDecihours(decihours); err != nil {
			panic(fmt.Sprintf("testutil.WithFlextime: %v", err))
		}
	}
}

func Submitted(at time.Time) TimesheetOption {
	return func(ts *domain.Timesheet) {
		ts.SubmittedAt = &at
	}
}

// NewTestTimesheet returns an unsaved timesheet for e whose week ends on
// the Friday on or after endDate.
func NewTestTimesheet(e *domain.Employee, endDate time.Time, opts ...TimesheetOption) *domain.Timesheet {
	ts := domain.NewTimesheetFor(e, endDate)
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
