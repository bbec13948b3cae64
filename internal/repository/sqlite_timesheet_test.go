package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timesheetTestSetup stores one employee and returns the repos under test.
func timesheetTestSetup(t *testing.T) (*sql.DB, *SQLiteTimesheetRepo, *domain.Employee) {
	t.Helper()
	database := testutil.NewTestDB(t)
	emp := testutil.NewTestEmployee("Ivy")
	require.NoError(t, NewSQLiteEmployeeRepo(database).Create(context.Background(), emp))
	return database, NewSQLiteTimesheetRepo(database), emp
}

func TestTimesheetRepo_CreateAndGetByID(t *testing.T) {
	_, repo, emp := timesheetTestSetup(t)
	ctx := context.Background()

	ts := testutil.NewTestTimesheet(emp, testutil.Date(2025, time.January, 15), testutil.WithOvertime(15))
	require.NoError(t, repo.Create(ctx, ts))
	require.NotZero(t, ts.ID)

	got, err := repo.GetByID(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2025, time.January, 17), got.EndDate())
	assert.Equal(t, 15, got.OvertimeDecihours())
	assert.Equal(t, 0, got.FlextimeDecihours())
	assert.Equal(t, emp.Number, got.Employee.Number)
	assert.Equal(t, emp.Name, got.Employee.Name)
	assert.Empty(t, got.Details)
	assert.Nil(t, got.SubmittedAt)
}

func TestTimesheetRepo_GetByID_NotFound(t *testing.T) {
	_, repo, _ := timesheetTestSetup(t)
	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimesheetRepo_DuplicateWeekConflicts(t *testing.T) {
	_, repo, emp := timesheetTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestTimesheet(emp, testutil.Date(2025, time.January, 13))))
	err := repo.Create(ctx, testutil.NewTestTimesheet(emp, testutil.Date(2025, time.January, 16)))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestTimesheetRepo_CreateForUnknownEmployee(t *testing.T) {
	_, repo, _ := timesheetTestSetup(t)
	ts := testutil.NewTestTimesheet(&domain.Employee{Number: 4242}, testutil.Date(2025, time.January, 17))
	err := repo.Create(context.Background(), ts)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimesheetRepo_OnDiskEnforcesForeignKeysOnEveryConnection(t *testing.T) {
	database := testutil.NewTestDB(t, testutil.OnDisk())
	database.SetMaxOpenConns(4)
	repo := NewSQLiteTimesheetRepo(database)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		ts := testutil.NewTestTimesheet(&domain.Employee{Number: 4242}, testutil.Date(2025, time.January, 17))
		assert.ErrorIs(t, repo.Create(ctx, ts), ErrNotFound)
	}
}

func TestTimesheetRepo_FindByWeekSnapsDate(t *testing.T) {
	_, repo, emp := timesheetTestSetup(t)
	ctx := context.Background()

	ts := testutil.NewTestTimesheet(emp, testutil.Date(2025, time.January, 17))
	require.NoError(t, repo.Create(ctx, ts))

	got, err := repo.FindByWeek(ctx, emp.Number, testutil.Date(2025, time.January, 14))
	require.NoError(t, err)
	assert.Equal(t, ts.ID, got.ID)

	_, err = repo.FindByWeek(ctx, emp.Number, testutil.Date(2025, time.January, 24))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimesheetRepo_LatestAndListByEmployee(t *testing.T) {
	database, repo, emp := timesheetTestSetup(t)
	ctx := context.Background()

	other := testutil.NewTestEmployee("Jon")
	require.NoError(t, NewSQLiteEmployeeRepo(database).Create(ctx, other))

	for _, d := range []int{3, 17, 10} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestTimesheet(emp, testutil.Date(2025, time.January, d))))
	}
	require.NoError(t, repo.Create(ctx, testutil.NewTestTimesheet(other, testutil.Date(2025, time.January, 31))))

	latest, err := repo.LatestByEmployee(ctx, emp.Number)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-17", latest.WeekEnding())

	mine, err := repo.ListByEmployee(ctx, emp.Number)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "2025-01-17", mine[0].WeekEnding())
	assert.Equal(t, "2025-01-03", mine[2].WeekEnding())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, other.Number, all[0].Employee.Number)

	_, err = repo.LatestByEmployee(ctx, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimesheetRepo_UpdateHeader(t *testing.T) {
	_, repo, emp := timesheetTestSetup(t)
	ctx := context.Background()

	ts := testutil.NewTestTimesheet(emp, testutil.Date(2025, time.January, 17))
	require.NoError(t, repo.Create(ctx, ts))

	submitted := time.Date(2025, 1, 17, 17, 0, 0, 0, time.UTC)
	ts.SetEndDate(testutil.Date(2025, time.January, 20))
	require.NoError(t, ts.SetFlextimeDecihours(25))
	ts.SubmittedAt = &submitted
	require.NoError(t, repo.Update(ctx, ts))

	got, err := repo.GetByID(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-24", got.WeekEnding())
	assert.Equal(t, 25, got.FlextimeDecihours())
	require.NotNil(t, got.SubmittedAt)
	assert.True(t, submitted.Equal(*got.SubmittedAt))
}

func TestTimesheetRepo_DeleteCascadesRows(t *testing.T) {
	database, repo, emp := timesheetTestSetup(t)
	ctx := context.Background()
	rows := NewSQLiteTimesheetRowRepo(database)

	ts := testutil.NewTestTimesheet(emp, testutil.Date(2025, time.January, 17), testutil.WithFullWeek(1, "A"))
	require.NoError(t, repo.Create(ctx, ts))
	require.NoError(t, rows.ReplaceAll(ctx, ts.ID, ts.Details))

	require.NoError(t, repo.Delete(ctx, ts.ID))
	n, err := rows.CountByTimesheet(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.ErrorIs(t, repo.Delete(ctx, ts.ID), ErrNotFound)
}
