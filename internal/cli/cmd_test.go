package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/config"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(db)

	employeeRepo := repository.NewSQLiteEmployeeRepo(db)
	return &App{
		Employees: service.NewEmployeeService(employeeRepo, uow),
		Auth: service.NewAuthService(employeeRepo,
			repository.NewSQLiteCredentialsRepo(db),
			repository.NewSQLiteTokenRepo(db),
			time.Hour),
		Timesheets: service.NewTimesheetService(
			repository.NewSQLiteTimesheetRepo(db),
			uow),
		Import: service.NewImportService(employeeRepo, uow),
		Config: config.DefaultConfig(),
		// IsInteractive left nil: prompts are never shown.
	}
}

// seedEmployee creates an employee for CLI tests.
func seedEmployee(t *testing.T, app *App, name string, opts ...testutil.EmployeeOption) *domain.Employee {
	t.Helper()
	e := testutil.NewTestEmployee(name, opts...)
	require.NoError(t, app.Employees.Create(context.Background(), e, "secret"))
	return e
}

// seedTimesheet stores a timesheet for the week ending 2025-01-17.
func seedTimesheet(t *testing.T, app *App, e *domain.Employee, opts ...testutil.TimesheetOption) *domain.Timesheet {
	t.Helper()
	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17), opts...)
	require.NoError(t, app.Timesheets.Create(context.Background(), ts))
	return ts
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// executeCmd runs a cobra command and captures stdout/stderr without styling.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansi.ReplaceAllString(buf.String(), ""), err
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "timesheet")
	assert.Contains(t, output, "employee")
	assert.Contains(t, output, "serve")
}

// --- employee ---

func TestEmployeeAdd_WithPasswordFlag(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "employee", "add", "--number", "42", "--name", "Ann Lee", "--user", "ann", "--password", "pw1234")
	require.NoError(t, err)
	assert.Contains(t, out, "Created employee Ann Lee [42] as ann")

	_, err = app.Auth.Login(context.Background(), "ann", "pw1234")
	assert.NoError(t, err)
}

func TestEmployeeAdd_NoPasswordWithoutTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "employee", "add", "--number", "42", "--name", "Ann", "--user", "ann")
	assert.ErrorIs(t, err, errPasswordRequired)
}

func TestEmployeeAdd_MissingFlags(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "employee", "add", "--name", "Ann")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestEmployeeListShowEdit(t *testing.T) {
	app := testApp(t)
	e := seedEmployee(t, app, "Bea", testutil.WithEmployeeNumber(7), testutil.WithUserName("bea"))

	out, err := executeCmd(t, app, "employee", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Bea")
	assert.Contains(t, out, "bea")

	out, err = executeCmd(t, app, "employee", "edit", "7", "--name", "Beatrice")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated employee Beatrice [7]")

	out, err = executeCmd(t, app, "emp", "show", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Beatrice")
	assert.Contains(t, out, e.UserName)

	_, err = executeCmd(t, app, "employee", "show", "x")
	assert.Error(t, err)
}

func TestEmployeeList_Empty(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "employee", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No employees found.")
}

func TestEmployeeRemove_LastAdminRefused(t *testing.T) {
	app := testApp(t)
	seedEmployee(t, app, "Root", testutil.AsAdmin(), testutil.WithEmployeeNumber(1))
	seedEmployee(t, app, "Cal", testutil.WithEmployeeNumber(2))

	_, err := executeCmd(t, app, "employee", "remove", "1")
	assert.ErrorIs(t, err, service.ErrLastAdmin)

	out, err := executeCmd(t, app, "employee", "remove", "2", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed employee Cal [2]")
}

func TestEmployeePasswd(t *testing.T) {
	app := testApp(t)
	e := seedEmployee(t, app, "Dee")

	_, err := executeCmd(t, app, "employee", "passwd", itoa(int64(e.Number)), "--password", "newpass")
	require.NoError(t, err)

	_, err = app.Auth.Login(context.Background(), e.UserName, "newpass")
	assert.NoError(t, err)
	_, err = app.Auth.Login(context.Background(), e.UserName, "secret")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

// --- timesheet ---

func TestTimesheetNew_SnapsToFriday(t *testing.T) {
	app := testApp(t)
	e := seedEmployee(t, app, "Eve")

	out, err := executeCmd(t, app, "timesheet", "new", "--employee", itoa(int64(e.Number)), "--week-ending", "2025-01-14")
	require.NoError(t, err)
	assert.Contains(t, out, "week ending 2025-01-17 (wk 3)")

	_, err = executeCmd(t, app, "timesheet", "new", "--employee", itoa(int64(e.Number)), "--week-ending", "2025-01-17")
	assert.ErrorIs(t, err, service.ErrDuplicateWeek)
}

func TestTimesheetNew_ByWeekNumber(t *testing.T) {
	app := testApp(t)
	e := seedEmployee(t, app, "Fin")

	out, err := executeCmd(t, app, "ts", "new", "--employee", itoa(int64(e.Number)), "--week", "10", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-07 (wk 10)")

	_, err = executeCmd(t, app, "ts", "new", "--employee", itoa(int64(e.Number)), "--week", "53", "--year", "2025")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = executeCmd(t, app, "ts", "new", "--employee", itoa(int64(e.Number)), "--week", "2", "--week-ending", "2025-01-10")
	assert.Error(t, err)
}

func TestTimesheetRows_AddEditRemove(t *testing.T) {
	app := testApp(t)
	e := seedEmployee(t, app, "Gwen")
	ts := seedTimesheet(t, app, e)
	id := itoa(ts.ID)

	out, err := executeCmd(t, app, "timesheet", "row", "add", id, "--project", "3", "--wp", "DOC", "--hours", "0,0,8,8,8,8,7")
	require.NoError(t, err)
	assert.Contains(t, out, "DOC")
	assert.Contains(t, out, "39.0")

	out, err = executeCmd(t, app, "timesheet", "row", "hours", id, "1", "fri", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "40.0")

	got, err := app.Timesheets.Get(context.Background(), ts.ID)
	require.NoError(t, err)
	assert.True(t, got.IsValid())

	_, err = executeCmd(t, app, "timesheet", "row", "hours", id, "1", "Mon", "24.5")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = executeCmd(t, app, "timesheet", "row", "hours", id, "2", "Mon", "1")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "timesheet", "row", "remove", id, "1")
	require.NoError(t, err)
	got, err = app.Timesheets.Get(context.Background(), ts.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Details)
}

func TestTimesheetRowAdd_WrongNumberOfHours(t *testing.T) {
	app := testApp(t)
	ts := seedTimesheet(t, app, seedEmployee(t, app, "Hank"))

	_, err := executeCmd(t, app, "timesheet", "row", "add", itoa(ts.ID), "--project", "1", "--wp", "A", "--hours", "8,8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong number of hours")
}

func TestTimesheetOvertimeAndSubmit(t *testing.T) {
	app := testApp(t)
	e := seedEmployee(t, app, "Iris")
	ts := seedTimesheet(t, app, e,
		testutil.WithFullWeek(1, "A"),
		testutil.WithRow(2, "B", 2, 0, 0, 0, 0, 0, 0))
	id := itoa(ts.ID)

	_, err := executeCmd(t, app, "timesheet", "submit", id)
	assert.ErrorIs(t, err, service.ErrUnbalanced)

	out, err := executeCmd(t, app, "timesheet", "overtime", id, "2")
	require.NoError(t, err)
	assert.Contains(t, out, "overtime 2.0")
	assert.Contains(t, out, "● BALANCED")

	out, err = executeCmd(t, app, "timesheet", "submit", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted timesheet")

	_, err = executeCmd(t, app, "timesheet", "flextime", id, "1")
	assert.ErrorIs(t, err, service.ErrSubmitted)

	out, err = executeCmd(t, app, "timesheet", "reopen", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Reopened timesheet")
}

func TestTimesheetShowListCurrent(t *testing.T) {
	app := testApp(t)
	e := seedEmployee(t, app, "Jude")
	ts := seedTimesheet(t, app, e, testutil.WithFullWeek(5, "WP-X"))
	num := itoa(int64(e.Number))

	out, err := executeCmd(t, app, "timesheet", "show", itoa(ts.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "WP-X")
	assert.Contains(t, out, "● BALANCED")

	out, err = executeCmd(t, app, "timesheet", "show", "--employee", num, "--week-ending", "2025-01-13")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-17")

	_, err = executeCmd(t, app, "timesheet", "show")
	assert.Error(t, err)

	out, err = executeCmd(t, app, "timesheet", "list", "--employee", num)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-17")

	out, err = executeCmd(t, app, "week", "current", num)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-17")
}

func TestTimesheetList_Empty(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "timesheet", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No timesheets found.")
}

func TestTimesheetRemove(t *testing.T) {
	app := testApp(t)
	ts := seedTimesheet(t, app, seedEmployee(t, app, "Kai"))

	out, err := executeCmd(t, app, "timesheet", "remove", itoa(ts.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Removed timesheet")

	_, err = app.Timesheets.Get(context.Background(), ts.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTimesheetImport(t *testing.T) {
	app := testApp(t)
	seedEmployee(t, app, "Lou", testutil.WithEmployeeNumber(900))

	path := filepath.Join(t.TempDir(), "weeks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "employee": 900,
  "weeks": [
    {"weekEnding": "2025-01-17", "rows": [{"projectId": 1, "workPackageId": "A", "hours": [0, 0, 8, 8, 8, 8, 8]}]},
    {"weekEnding": "2025-01-24", "flextime": 1, "rows": [{"projectId": 1, "workPackageId": "A", "hours": [0, 1, 8, 8, 8, 8, 8]}]}
  ]
}`), 0o644))

	out, err := executeCmd(t, app, "timesheet", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 timesheets for Lou [900]")
	assert.Contains(t, out, "2025-01-24")
}

func TestParseDay(t *testing.T) {
	cases := map[string]int{"sat": 0, "Saturday": 0, "SUN": 1, "mon": 2, "Wed": 4, "friday": 6, "3": 3}
	for in, want := range cases {
		got, err := parseDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"7", "-1", "xyz", "s"} {
		_, err := parseDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestWeekEndingValue(t *testing.T) {
	var end time.Time
	v := &weekEndingValue{target: &end}
	assert.Equal(t, "", v.String())
	assert.Equal(t, "date", v.Type())

	require.NoError(t, v.Set("2025-01-18"))
	assert.Equal(t, testutil.Date(2025, time.January, 24), end)
	assert.Equal(t, "2025-01-24", v.String())

	assert.ErrorIs(t, v.Set("24.01.2025"), domain.ErrInvalidArgument)
	assert.Equal(t, testutil.Date(2025, time.January, 24), end)
}
