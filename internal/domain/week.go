package domain

import "time"

// Day indexes within a timesheet week. The week starts on Saturday and
// ends on Friday.
const (
	Saturday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

const (
	DaysInWeek = 7

	// MaxRows is the row cap applied by the service and API layers.
	MaxRows = 7

	DateLayout = "2006-01-02"
)

var dayNames = [DaysInWeek]string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}

// DayName returns the three-letter name of a day index, or "" when the index
// is out of range.
func DayName(day int) string {
	if day < 0 || day >= DaysInWeek {
		return ""
	}
	return dayNames[day]
}

// DayIndex maps a calendar weekday onto the Saturday-start day index.
func DayIndex(wd time.Weekday) int {
	return (int(wd) + 1) % DaysInWeek
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FridayOnOrAfter returns the first Friday on or after t's calendar date.
func FridayOnOrAfter(t time.Time) time.Time {
	day := DateOnly(t)
	delta := (int(time.Friday) - int(day.Weekday()) + DaysInWeek) % DaysInWeek
	return day.AddDate(0, 0, delta)
}

// WeekStart returns the Saturday that opens the week ending on the given
// Friday.
func WeekStart(endDate time.Time) time.Time {
	return FridayOnOrAfter(endDate).AddDate(0, 0, -(DaysInWeek - 1))
}

// firstWeekEnd is the Friday closing week 1 of year, i.e. the week that
// contains January 1.
func firstWeekEnd(year int) time.Time {
	return FridayOnOrAfter(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
}

// WeeksInYear returns how many Saturday-start weeks end in year.
func WeeksInYear(year int) int {
	return daysBetween(firstWeekEnd(year), firstWeekEnd(year+1)) / DaysInWeek
}

// weekOfYear numbers the week ending on the given Friday. A Friday always
// belongs to the week-based year of its own calendar year.
func weekOfYear(friday time.Time) int {
	return daysBetween(firstWeekEnd(friday.Year()), friday)/DaysInWeek + 1
}

func daysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

// ParseWeekEnding parses a yyyy-MM-dd date and snaps it to its Friday.
func ParseWeekEnding(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invalidArgument("date %q must be formatted as YYYY-MM-DD", s)
	}
	return FridayOnOrAfter(t), nil
}
