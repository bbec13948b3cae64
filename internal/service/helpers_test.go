package service

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	passwordCost = bcrypt.MinCost
}

type testServices struct {
	db         *sql.DB
	employees  EmployeeService
	auth       *authService
	timesheets *timesheetService
	imports    ImportService
	log        *bytes.Buffer
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	log := &bytes.Buffer{}
	obs := NewLogUseCaseObserver(log)

	employees := repository.NewSQLiteEmployeeRepo(database)
	return &testServices{
		db:        database,
		employees: NewEmployeeService(employees, uow, obs),
		auth: NewAuthService(employees,
			repository.NewSQLiteCredentialsRepo(database),
			repository.NewSQLiteTokenRepo(database),
			time.Hour, obs).(*authService),
		timesheets: NewTimesheetService(
			repository.NewSQLiteTimesheetRepo(database),
			uow, obs).(*timesheetService),
		imports: NewImportService(employees, uow, obs),
		log:     log,
	}
}

func (s *testServices) createEmployee(t *testing.T, name string, opts ...testutil.EmployeeOption) *domain.Employee {
	t.Helper()
	e := testutil.NewTestEmployee(name, opts...)
	require.NoError(t, s.employees.Create(context.Background(), e, "secret"))
	return e
}

func row(t *testing.T, projectID int, wp string, hours ...float64) *domain.TimesheetRow {
	t.Helper()
	r, err := domain.NewTimesheetRow(projectID, wp, "", hours...)
	require.NoError(t, err)
	return r
}
