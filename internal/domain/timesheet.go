package domain

import (
	"math"
	"time"
)

// FullWorkWeek is the balanced net total of a valid timesheet, in decihours.
const FullWorkWeek = 400

// Timesheet is one employee's charges for one Saturday..Friday week.
//
// The end date is always a Friday: every way of assigning it snaps the given
// date forward to the next-or-same Friday rather than rejecting it.
type Timesheet struct {
	ID       int64
	Employee *Employee
	Details  []*TimesheetRow

	// SubmittedAt is set once the week has been handed in for review.
	SubmittedAt *time.Time

	endDate  time.Time
	overtime int
	flextime int
}

// NewTimesheet returns an empty timesheet for the week containing today.
func NewTimesheet() *Timesheet {
	return &Timesheet{
		endDate: FridayOnOrAfter(time.Now()),
		Details: []*TimesheetRow{},
	}
}

// NewTimesheetFor returns a timesheet for employee whose week ends on the
// Friday on or after endDate.
func NewTimesheetFor(employee *Employee, endDate time.Time, rows ...*TimesheetRow) *Timesheet {
	details := make([]*TimesheetRow, 0, len(rows))
	details = append(details, rows...)
	return &Timesheet{
		Employee: employee,
		Details:  details,
		endDate:  FridayOnOrAfter(endDate),
	}
}

func (t *Timesheet) EndDate() time.Time { return t.endDate }

// SetEndDate snaps date to the next-or-same Friday and stores it.
func (t *Timesheet) SetEndDate(date time.Time) {
	t.endDate = FridayOnOrAfter(date)
}

// WeekStart returns the Saturday that opens this timesheet's week.
func (t *Timesheet) WeekStart() time.Time {
	return WeekStart(t.endDate)
}

// WeekNumber numbers the week within its year: weeks start on Saturday and
// week 1 is the one containing January 1.
func (t *Timesheet) WeekNumber() int {
	return weekOfYear(t.endDate)
}

func (t *Timesheet) SetWeekNumber(week, year int) error {
	if week < 1 || week > WeeksInYear(year) {
		return invalidArgument("week %d out of range for %d (1..%d)", week, year, WeeksInYear(year))
	}
	t.endDate = firstWeekEnd(year).AddDate(0, 0, (week-1)*DaysInWeek)
	return nil
}

// WeekEnding renders the end date as yyyy-MM-dd.
func (t *Timesheet) WeekEnding() string {
	return t.endDate.Format(DateLayout)
}

// AddRow appends an empty row and returns it.
func (t *Timesheet) AddRow() *TimesheetRow {
	row := &TimesheetRow{}
	t.Details = append(t.Details, row)
	return row
}

// DeleteRow removes row by identity. Unknown rows are ignored.
func (t *Timesheet) DeleteRow(row *TimesheetRow) {
	for i, r := range t.Details {
		if r == row {
			t.Details = append(t.Details[:i], t.Details[i+1:]...)
			return
		}
	}
}

func (t *Timesheet) TotalDecihours() int {
	sum := 0
	for _, r := range t.Details {
		sum += r.DeciSum()
	}
	return sum
}

func (t *Timesheet) TotalHours() float64 {
	return ToHour(t.TotalDecihours())
}

// DailyDecihours totals each day across all rows, index 0 being Saturday.
func (t *Timesheet) DailyDecihours() [DaysInWeek]int {
	var sums [DaysInWeek]int
	for _, r := range t.Details {
		for d, c := range r.Decihours() {
			sums[d] += c
		}
	}
	return sums
}

func (t *Timesheet) DailyHours() [DaysInWeek]float64 {
	var out [DaysInWeek]float64
	for d, c := range t.DailyDecihours() {
		out[d] = ToHour(c)
	}
	return out
}

func (t *Timesheet) OvertimeDecihours() int { return t.overtime }
func (t *Timesheet) FlextimeDecihours() int { return t.flextime }
func (t *Timesheet) OvertimeHours() float64 { return ToHour(t.overtime) }
func (t *Timesheet) FlextimeHours() float64 { return ToHour(t.flextime) }

func (t *Timesheet) SetOvertimeDecihours(v int) error {
	if v < 0 {
		return invalidArgument("overtime %d must not be negative", v)
	}
	t.overtime = v
	return nil
}

func (t *Timesheet) SetOvertimeHours(hours float64) error {
	v, err := adjustmentDecihours("overtime", hours)
	if err != nil {
		return err
	}
	return t.SetOvertimeDecihours(v)
}

func (t *Timesheet) SetFlextimeDecihours(v int) error {
	if v < 0 {
		return invalidArgument("flextime %d must not be negative", v)
	}
	t.flextime = v
	return nil
}

func (t *Timesheet) SetFlextimeHours(hours float64) error {
	v, err := adjustmentDecihours("flextime", hours)
	if err != nil {
		return err
	}
	return t.SetFlextimeDecihours(v)
}

// maxAdjustmentHours bounds overtime and flextime given in hours so the
// decihour value fits in an int32.
const maxAdjustmentHours = math.MaxInt32 / 10

func adjustmentDecihours(kind string, hours float64) (int, error) {
	switch {
	case math.IsNaN(hours) || math.IsInf(hours, 0):
		return 0, invalidArgument("%s %v is not a number of hours", kind, hours)
	case hours < 0:
		return 0, invalidArgument("%s %v must not be negative", kind, hours)
	case hours > maxAdjustmentHours:
		return 0, invalidArgument("%s %v exceeds %d hours", kind, hours, maxAdjustmentHours)
	}
	return ToDecihour(hours), nil
}

// IsValid reports whether the week balances: overtime and flextime are not
// both used, and the total less overtime and flextime is exactly 40 hours.
func (t *Timesheet) IsValid() bool {
	if t.overtime != 0 && t.flextime != 0 {
		return false
	}
	return t.TotalDecihours()-t.overtime-t.flextime == FullWorkWeek
}

// HasRow reports whether another row already charges the same project and
// work package.
func (t *Timesheet) HasRow(projectID int, workPackageID string) bool {
	for _, r := range t.Details {
		if r.projectID == projectID && r.WorkPackageID == workPackageID {
			return true
		}
	}
	return false
}

// IsSubmitted reports whether the week has been handed in.
func (t *Timesheet) IsSubmitted() bool {
	return t.SubmittedAt != nil
}
