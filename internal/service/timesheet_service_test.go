package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimesheetService_CreateAndGet(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Sam")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 15),
		testutil.WithFullWeek(1, "A"),
		testutil.WithRow(2, "B", 0, 0, 0, 0, 0, 0, 1),
		testutil.WithOvertime(10))
	require.NoError(t, s.timesheets.Create(ctx, ts))

	got, err := s.timesheets.Get(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-17", got.WeekEnding())
	require.Len(t, got.Details, 2)
	assert.Equal(t, 1, got.Details[0].ProjectID())
	assert.Equal(t, 410, got.TotalDecihours())
	assert.True(t, got.IsValid())
	assert.Equal(t, e.Number, got.Employee.Number)
}

func TestTimesheetService_CreateRejectsDuplicateWeek(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Tia")

	require.NoError(t, s.timesheets.Create(ctx, testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 13))))
	err := s.timesheets.Create(ctx, testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17)))
	assert.ErrorIs(t, err, ErrDuplicateWeek)

	other := s.createEmployee(t, "Uma")
	assert.NoError(t, s.timesheets.Create(ctx, testutil.NewTestTimesheet(other, testutil.Date(2025, time.January, 17))))
}

func TestTimesheetService_CreateRejectsTooManyRows(t *testing.T) {
	s := setupServices(t)
	e := s.createEmployee(t, "Vic")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17))
	for i := 0; i <= domain.MaxRows; i++ {
		ts.AddRow()
	}
	assert.ErrorIs(t, s.timesheets.Create(context.Background(), ts), ErrTooManyRows)
}

func TestTimesheetService_CreateDuplicateRowRollsBack(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Wes")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17),
		testutil.WithFullWeek(1, "A"), testutil.WithFullWeek(1, "A"))
	assert.ErrorIs(t, s.timesheets.Create(ctx, ts), repository.ErrConflict)
	assert.Zero(t, ts.ID, "rolled-back insert must not leave its id behind")

	_, err := s.timesheets.FindByWeek(ctx, e.Number, testutil.Date(2025, time.January, 17))
	assert.ErrorIs(t, err, repository.ErrNotFound, "header insert must roll back with the rows")
}

func TestTimesheetService_CurrentIsLatestWeek(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Xan")

	for _, d := range []int{10, 24, 17} {
		require.NoError(t, s.timesheets.Create(ctx, testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, d))))
	}
	cur, err := s.timesheets.Current(ctx, e.Number)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-24", cur.WeekEnding())

	list, err := s.timesheets.ListByEmployee(ctx, e.Number)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	all, err := s.timesheets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTimesheetService_AddRowsCap(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Yul")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17))
	for p := 1; p <= 6; p++ {
		testutil.WithRow(p, "A", 0, 0, 0, 0, 0, 0, 0)(ts)
	}
	require.NoError(t, s.timesheets.Create(ctx, ts))

	got, err := s.timesheets.AddRows(ctx, ts.ID, row(t, 7, "A", 0, 0, 0, 0, 0, 0, 0))
	require.NoError(t, err)
	assert.Len(t, got.Details, 7)

	_, err = s.timesheets.AddRows(ctx, ts.ID, row(t, 8, "A", 0, 0, 0, 0, 0, 0, 0))
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestTimesheetService_ReplaceRows(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Zed")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17), testutil.WithFullWeek(1, "A"))
	require.NoError(t, s.timesheets.Create(ctx, ts))

	got, err := s.timesheets.ReplaceRows(ctx, ts.ID, []*domain.TimesheetRow{row(t, 3, "C", 0, 0, 4, 4, 4, 4, 4)})
	require.NoError(t, err)
	require.Len(t, got.Details, 1)
	assert.Equal(t, 200, got.TotalDecihours())

	reloaded, err := s.timesheets.Get(ctx, ts.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Details, 1)
	assert.Equal(t, 3, reloaded.Details[0].ProjectID())
}

func TestTimesheetService_UpdateHeaderAndRows(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Abe")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17), testutil.WithFullWeek(1, "A"))
	require.NoError(t, s.timesheets.Create(ctx, ts))

	ts.SetEndDate(testutil.Date(2025, time.January, 22))
	require.NoError(t, ts.SetFlextimeHours(2))
	ts.Details = append(ts.Details, row(t, 2, "B", 0, 0, 0, 0, 0, 0, 2))
	require.NoError(t, s.timesheets.Update(ctx, ts))

	got, err := s.timesheets.Get(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-24", got.WeekEnding())
	assert.Equal(t, 20, got.FlextimeDecihours())
	assert.Len(t, got.Details, 2)
	assert.True(t, got.IsValid())
}

func TestTimesheetService_UpdateIntoTakenWeek(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Bea")

	first := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17))
	second := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 24))
	require.NoError(t, s.timesheets.Create(ctx, first))
	require.NoError(t, s.timesheets.Create(ctx, second))

	second.SetEndDate(testutil.Date(2025, time.January, 16))
	assert.ErrorIs(t, s.timesheets.Update(ctx, second), ErrDuplicateWeek)
}

func TestTimesheetService_UpdateRollsBackOnRowFailure(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Cal")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17), testutil.WithFullWeek(1, "A"))
	require.NoError(t, s.timesheets.Create(ctx, ts))

	// Exec #1 = header update, #2 = row delete, #3 = first row insert.
	failing := NewTimesheetService(
		repository.NewSQLiteTimesheetRepo(s.db),
		&testutil.FailOnNthExecUoW{DB: s.db, FailOn: 3, Err: errors.New("injected row insert failure")},
	)

	require.NoError(t, ts.SetOvertimeHours(5))
	ts.Details = []*domain.TimesheetRow{row(t, 9, "Z", 0, 0, 9, 9, 9, 9, 9)}
	err := failing.Update(ctx, ts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected row insert failure")

	got, err := s.timesheets.Get(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.OvertimeDecihours(), "header change must roll back")
	require.Len(t, got.Details, 1)
	assert.Equal(t, 1, got.Details[0].ProjectID(), "original rows must survive")
}

func TestTimesheetService_SubmitRequiresBalance(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Dot")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17), testutil.WithRow(1, "A", 0, 0, 8, 8, 8, 8, 7))
	require.NoError(t, s.timesheets.Create(ctx, ts))

	_, err := s.timesheets.Submit(ctx, ts.ID)
	require.ErrorIs(t, err, ErrUnbalanced)
	assert.Contains(t, err.Error(), "total 39.0")

	_, err = s.timesheets.ReplaceRows(ctx, ts.ID, []*domain.TimesheetRow{row(t, 1, "A", 0, 0, 8, 8, 8, 8, 8)})
	require.NoError(t, err)

	submitted, err := s.timesheets.Submit(ctx, ts.ID)
	require.NoError(t, err)
	require.NotNil(t, submitted.SubmittedAt)
	assert.Equal(t, domain.TimesheetSubmitted, submitted.Status())
}

func TestTimesheetService_SubmittedIsReadOnlyUntilReopened(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Eli")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17), testutil.WithFullWeek(1, "A"))
	require.NoError(t, s.timesheets.Create(ctx, ts))
	_, err := s.timesheets.Submit(ctx, ts.ID)
	require.NoError(t, err)

	_, err = s.timesheets.AddRows(ctx, ts.ID, row(t, 2, "B", 0, 0, 0, 0, 0, 0, 0))
	assert.ErrorIs(t, err, ErrSubmitted)
	_, err = s.timesheets.ReplaceRows(ctx, ts.ID, nil)
	assert.ErrorIs(t, err, ErrSubmitted)
	assert.ErrorIs(t, s.timesheets.Update(ctx, ts), ErrSubmitted)
	_, err = s.timesheets.Submit(ctx, ts.ID)
	assert.ErrorIs(t, err, ErrSubmitted)

	reopened, err := s.timesheets.Reopen(ctx, ts.ID)
	require.NoError(t, err)
	assert.Nil(t, reopened.SubmittedAt)

	_, err = s.timesheets.AddRows(ctx, ts.ID, row(t, 2, "B", 0, 0, 0, 0, 0, 0, 0))
	assert.NoError(t, err)
}

func TestTimesheetService_ReopenDraftConflicts(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Gus")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17), testutil.WithFullWeek(1, "A"))
	require.NoError(t, s.timesheets.Create(ctx, ts))

	_, err := s.timesheets.Reopen(ctx, ts.ID)
	assert.ErrorIs(t, err, ErrNotSubmitted)
}

func TestTimesheetService_Delete(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Fin")

	ts := testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 17), testutil.WithFullWeek(1, "A"))
	require.NoError(t, s.timesheets.Create(ctx, ts))
	require.NoError(t, s.timesheets.Delete(ctx, ts.ID))

	_, err := s.timesheets.Get(ctx, ts.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.timesheets.Delete(ctx, ts.ID), repository.ErrNotFound)
}
