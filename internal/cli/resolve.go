package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
)

func parseTimesheetID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid timesheet ID %q", s)
	}
	return id, nil
}

// parseDay accepts a day name (Sat, saturday, MON) or a Saturday-based
// index 0..6.
func parseDay(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= domain.DaysInWeek {
			return 0, fmt.Errorf("day %d out of range (0=Sat .. 6=Fri)", n)
		}
		return n, nil
	}
	for d := 0; d < domain.DaysInWeek; d++ {
		name := domain.DayName(d)
		if len(s) >= 3 && strings.HasPrefix(strings.ToLower(s), strings.ToLower(name)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q (use Sat, Sun, Mon, Tue, Wed, Thu or Fri)", s)
}

// rowAt resolves a 1-based row number shown by "timesheet show".
func rowAt(ts *domain.Timesheet, s string) (*domain.TimesheetRow, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(ts.Details) {
		return nil, fmt.Errorf("row %q not found (timesheet %d has %d rows)", s, ts.ID, len(ts.Details))
	}
	return ts.Details[n-1], nil
}
