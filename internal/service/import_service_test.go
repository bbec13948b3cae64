package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/importer"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportService_ImportFile(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Gil", testutil.WithEmployeeNumber(4711))

	path := filepath.Join(t.TempDir(), "weeks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`employee: 4711
weeks:
  - weekEnding: "2025-01-15"
    rows:
      - projectId: 1
        workPackageId: A
        hours: [0, 0, 8, 8, 8, 8, 8]
  - weekEnding: "2025-01-24"
    overtime: 1
    rows:
      - projectId: 1
        workPackageId: A
        hours: [1, 0, 8, 8, 8, 8, 8]
`), 0o644))

	res, err := s.imports.ImportFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, e.Number, res.Employee.Number)
	require.Len(t, res.Timesheets, 2)

	got, err := s.timesheets.FindByWeek(ctx, e.Number, testutil.Date(2025, time.January, 17))
	require.NoError(t, err)
	assert.True(t, got.IsValid())

	cur, err := s.timesheets.Current(ctx, e.Number)
	require.NoError(t, err)
	assert.Equal(t, 10, cur.OvertimeDecihours())
	assert.True(t, cur.IsValid())
}

func TestImportService_ValidationErrorsAreInvalidArgument(t *testing.T) {
	s := setupServices(t)

	_, err := s.imports.ImportSchema(context.Background(), &importer.ImportSchema{})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
}

func TestImportService_UnknownEmployee(t *testing.T) {
	s := setupServices(t)
	schema := &importer.ImportSchema{
		Employee: 999,
		Weeks:    []importer.WeekImport{{WeekEnding: "2025-01-17"}},
	}
	_, err := s.imports.ImportSchema(context.Background(), schema)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestImportService_ExistingWeekAbortsWholeImport(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	e := s.createEmployee(t, "Hap")

	require.NoError(t, s.timesheets.Create(ctx, testutil.NewTestTimesheet(e, testutil.Date(2025, time.January, 24))))

	schema := &importer.ImportSchema{
		Employee: e.Number,
		Weeks: []importer.WeekImport{
			{WeekEnding: "2025-01-17"},
			{WeekEnding: "2025-01-24"},
		},
	}
	_, err := s.imports.ImportSchema(ctx, schema)
	require.ErrorIs(t, err, ErrDuplicateWeek)

	_, err = s.timesheets.FindByWeek(ctx, e.Number, testutil.Date(2025, time.January, 17))
	assert.ErrorIs(t, err, repository.ErrNotFound, "earlier weeks must roll back")
}
