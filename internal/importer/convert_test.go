package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_BuildsTimesheets(t *testing.T) {
	emp := &domain.Employee{Number: 1000, Name: "Ann", UserName: "ann"}
	s := validMinimalSchema()
	s.Weeks[0].WeekEnding = "2025-01-15"
	s.Weeks[0].Rows = append(s.Weeks[0].Rows, RowImport{ProjectID: 2, WorkPackageID: "B", Hours: []float64{0, 0, 0, 0, 0, 0, 1.5}, Notes: "extra"})
	s.Weeks[0].Overtime = ptrFloat(1.5)

	sheets, err := Convert(s, emp)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	ts := sheets[0]
	assert.Same(t, emp, ts.Employee)
	assert.Equal(t, time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC), ts.EndDate())
	assert.Equal(t, 15, ts.OvertimeDecihours())
	require.Len(t, ts.Details, 2)
	assert.Equal(t, "extra", ts.Details[1].Notes)
	assert.True(t, ts.IsValid())
}

func TestConvert_RejectsOutOfRangeHours(t *testing.T) {
	s := validMinimalSchema()
	s.Weeks[0].Rows[0].Hours = []float64{0, 0, 30, 0, 0, 0, 0}
	_, err := Convert(s, &domain.Employee{Number: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestLoadImportSchema_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "weeks.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`employee: 1000
weeks:
  - weekEnding: "2025-01-17"
    flextime: 2
    rows:
      - projectId: 1
        workPackageId: A
        hours: [0, 0, 8, 8, 8, 8, 10]
`), 0o644))

	fromYAML, err := LoadImportSchema(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 1000, fromYAML.Employee)
	require.Len(t, fromYAML.Weeks, 1)
	require.NotNil(t, fromYAML.Weeks[0].Flextime)
	assert.Equal(t, 2.0, *fromYAML.Weeks[0].Flextime)
	assert.Equal(t, []float64{0, 0, 8, 8, 8, 8, 10}, fromYAML.Weeks[0].Rows[0].Hours)

	jsonPath := filepath.Join(dir, "weeks.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"employee":1000,"weeks":[{"weekEnding":"2025-01-17","rows":[{"projectId":1,"workPackageId":"A","hours":[0,0,8,8,8,8,8]}]}]}`), 0o644))

	fromJSON, err := LoadImportSchema(jsonPath)
	require.NoError(t, err)
	assert.Empty(t, ValidateImportSchema(fromJSON))
	assert.Equal(t, "A", fromJSON.Weeks[0].Rows[0].WorkPackageID)
}

func TestLoadImportSchema_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"employee":`), 0o644))
	_, err := LoadImportSchema(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")

	_, err = LoadImportSchema(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
