package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// Convert transforms a validated ImportSchema into timesheets owned by
// employee, in file order.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, employee *domain.Employee) ([]*domain.Timesheet, error) {
	sheets := make([]*domain.Timesheet, 0, len(schema.Weeks))
	for i, w := range schema.Weeks {
		end, err := time.Parse(domain.DateLayout, w.WeekEnding)
		if err != nil {
			return nil, fmt.Errorf("weeks[%d]: parsing weekEnding: %w", i, err)
		}
		ts := domain.NewTimesheetFor(employee, end)

		if w.Overtime != nil {
			if err := ts.SetOvertimeHours(*w.Overtime); err != nil {
				return nil, fmt.Errorf("weeks[%d]: %w", i, err)
			}
		}
		if w.Flextime != nil {
			if err := ts.SetFlextimeHours(*w.Flextime); err != nil {
				return nil, fmt.Errorf("weeks[%d]: %w", i, err)
			}
		}

		for j, r := range w.Rows {
			row, err := domain.NewTimesheetRow(r.ProjectID, r.WorkPackageID, r.Notes, r.Hours...)
			if err != nil {
				return nil, fmt.Errorf("weeks[%d].rows[%d]: %w", i, j, err)
			}
			ts.Details = append(ts.Details, row)
		}
		sheets = append(sheets, ts)
	}
	return sheets, nil
}
