package importer

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Employee <= 0 {
		errs = append(errs, fmt.Errorf("employee is required and must be positive"))
	}
	if len(schema.Weeks) == 0 {
		errs = append(errs, fmt.Errorf("weeks: at least one week is required"))
	}

	seen := make(map[string]int)
	for i, w := range schema.Weeks {
		prefix := fmt.Sprintf("weeks[%d]", i)
		errs = append(errs, validateWeek(prefix, &w)...)

		if end, err := time.Parse(domain.DateLayout, w.WeekEnding); err == nil {
			key := domain.FridayOnOrAfter(end).Format(domain.DateLayout)
			if first, dup := seen[key]; dup {
				errs = append(errs, fmt.Errorf("%s: week ending %s already given in weeks[%d]", prefix, key, first))
			} else {
				seen[key] = i
			}
		}
	}

	return errs
}

func validateWeek(prefix string, w *WeekImport) []error {
	var errs []error

	if w.WeekEnding == "" {
		errs = append(errs, fmt.Errorf("%s.weekEnding is required", prefix))
	} else if _, err := time.Parse(domain.DateLayout, w.WeekEnding); err != nil {
		errs = append(errs, fmt.Errorf("%s.weekEnding: invalid date format %q (expected YYYY-MM-DD)", prefix, w.WeekEnding))
	}

	errs = append(errs, validateAdjustment(prefix+".overtime", w.Overtime)...)
	errs = append(errs, validateAdjustment(prefix+".flextime", w.Flextime)...)

	if len(w.Rows) > domain.MaxRows {
		errs = append(errs, fmt.Errorf("%s.rows: %d rows exceeds the limit of %d", prefix, len(w.Rows), domain.MaxRows))
	}

	type rowKey struct {
		project int
		wp      string
	}
	keys := make(map[rowKey]bool)
	for j, r := range w.Rows {
		rp := fmt.Sprintf("%s.rows[%d]", prefix, j)
		if r.ProjectID < 0 {
			errs = append(errs, fmt.Errorf("%s.projectId must not be negative", rp))
		}
		k := rowKey{r.ProjectID, r.WorkPackageID}
		if keys[k] {
			errs = append(errs, fmt.Errorf("%s: duplicate project %d work package %q", rp, r.ProjectID, r.WorkPackageID))
		}
		keys[k] = true

		if len(r.Hours) != domain.DaysInWeek {
			errs = append(errs, fmt.Errorf("%s.hours: expected %d values, got %d", rp, domain.DaysInWeek, len(r.Hours)))
			continue
		}
		for d, h := range r.Hours {
			if math.IsNaN(h) || h < 0 || h > domain.HoursInDay {
				errs = append(errs, fmt.Errorf("%s.hours[%s]: %v out of range 0..24", rp, domain.DayName(d), h))
			}
		}
	}

	return errs
}

func validateAdjustment(field string, v *float64) []error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || *v < 0 {
		return []error{fmt.Errorf("%s must not be negative", field)}
	}
	return nil
}
