package domain

import (
	"fmt"
	"math"
	"strings"
)

const (
	// MaxDecihours is the largest charge a single day can carry (24.0 hours).
	MaxDecihours = 240
	HoursInDay   = 24.0

	dayBits = 8
	dayMask = 0xFF

	// topByte covers bits 56..63, which must stay clear in a packed value.
	topByte int64 = -1 << (DaysInWeek * dayBits)
)

// dayShift and clearMask are indexed by day. clearMask[d] zeroes the byte
// belonging to day d and keeps the other six.
var (
	dayShift = [DaysInWeek]uint{0, 8, 16, 24, 32, 40, 48}

	clearMask = [DaysInWeek]int64{
		^int64(dayMask << 0),
		^int64(dayMask << 8),
		^int64(dayMask << 16),
		^int64(dayMask << 24),
		^int64(dayMask << 32),
		^int64(dayMask << 40),
		^int64(dayMask << 48),
	}
)

// TimesheetRow is one project/work-package charge line. Hours for the seven
// days of the week are packed into a single integer, one decihour byte per
// day, Saturday in the lowest byte.
type TimesheetRow struct {
	projectID     int
	WorkPackageID string
	Notes         string
	packed        int64
}

// NewTimesheetRow builds a row from exactly seven daily hour values.
func NewTimesheetRow(projectID int, workPackageID, notes string, hours ...float64) (*TimesheetRow, error) {
	if len(hours) != DaysInWeek {
		return nil, invalidArgument("wrong number of hours: got %d, want %d", len(hours), DaysInWeek)
	}
	r := &TimesheetRow{WorkPackageID: workPackageID, Notes: notes}
	if err := r.SetProjectID(projectID); err != nil {
		return nil, err
	}
	var week [DaysInWeek]float64
	copy(week[:], hours)
	if err := r.SetHours(week); err != nil {
		return nil, err
	}
	return r, nil
}

// ToDecihour converts hours to decihours, rounding half away from zero.
func ToDecihour(hour float64) int {
	return int(math.Round(hour * 10))
}

// ToHour converts decihours to hours.
func ToHour(decihour int) float64 {
	return float64(decihour) / 10.0
}

func (r *TimesheetRow) ProjectID() int { return r.projectID }

func (r *TimesheetRow) SetProjectID(id int) error {
	if id < 0 {
		return invalidArgument("project id %d must not be negative", id)
	}
	r.projectID = id
	return nil
}

func checkDay(day int) error {
	if day < 0 || day >= DaysInWeek {
		return invalidArgument("day number out of range: %d", day)
	}
	return nil
}

func checkCharge(charge int) error {
	if charge < 0 || charge > MaxDecihours {
		return invalidArgument("charge out of range: %d", charge)
	}
	return nil
}

func checkHours(hours float64) error {
	if !(hours >= 0 && hours <= HoursInDay) {
		return invalidArgument("hours out of range: %v (must be between 0 and 24)", hours)
	}
	return nil
}

func (r *TimesheetRow) decihour(day int) int {
	return int((r.packed >> dayShift[day]) & dayMask)
}

// Decihour returns the charge for one day in decihours.
func (r *TimesheetRow) Decihour(day int) (int, error) {
	if err := checkDay(day); err != nil {
		return 0, err
	}
	return r.decihour(day), nil
}

// SetDecihour replaces the charge for one day, leaving the others intact.
func (r *TimesheetRow) SetDecihour(day, charge int) error {
	if err := checkDay(day); err != nil {
		return err
	}
	if err := checkCharge(charge); err != nil {
		return err
	}
	r.packed = (r.packed & clearMask[day]) | int64(charge)<<dayShift[day]
	return nil
}

// Hour returns the charge for one day in hours.
func (r *TimesheetRow) Hour(day int) (float64, error) {
	d, err := r.Decihour(day)
	if err != nil {
		return 0, err
	}
	return ToHour(d), nil
}

// SetHour sets the charge for one day in hours, rounded to one decimal.
func (r *TimesheetRow) SetHour(day int, hours float64) error {
	if err := checkHours(hours); err != nil {
		return err
	}
	return r.SetDecihour(day, ToDecihour(hours))
}

// Hours unpacks the week in hours, index 0 being Saturday.
func (r *TimesheetRow) Hours() [DaysInWeek]float64 {
	var out [DaysInWeek]float64
	for d := range out {
		out[d] = ToHour(r.decihour(d))
	}
	return out
}

// SetHours packs a full week of hours. Nothing is written if any value is
// out of range.
func (r *TimesheetRow) SetHours(hours [DaysInWeek]float64) error {
	var deci [DaysInWeek]int
	for d, h := range hours {
		if err := checkHours(h); err != nil {
			return fmt.Errorf("%s: %w", DayName(d), err)
		}
		deci[d] = ToDecihour(h)
	}
	return r.SetDecihours(deci)
}

// Decihours unpacks the week in decihours.
func (r *TimesheetRow) Decihours() [DaysInWeek]int {
	var out [DaysInWeek]int
	for d := range out {
		out[d] = r.decihour(d)
	}
	return out
}

// SetDecihours packs a full week of decihours.
func (r *TimesheetRow) SetDecihours(deci [DaysInWeek]int) error {
	var packed int64
	for d, c := range deci {
		if err := checkCharge(c); err != nil {
			return fmt.Errorf("%s: %w", DayName(d), err)
		}
		packed |= int64(c) << dayShift[d]
	}
	r.packed = packed
	return nil
}

// PackedHours returns the raw storage encoding.
func (r *TimesheetRow) PackedHours() int64 {
	return r.packed
}

// SetPackedHours installs a raw encoding after checking that it is well
// formed: non-negative, top byte clear and every day within 0..240.
func (r *TimesheetRow) SetPackedHours(value int64) error {
	if value < 0 || value&topByte != 0 {
		return invalidArgument("improperly formed packedHours: %#x", value)
	}
	for d := 0; d < DaysInWeek; d++ {
		if int((value>>dayShift[d])&dayMask) > MaxDecihours {
			return invalidArgument("improperly formed packedHours: %#x (%s exceeds 24 hours)", value, DayName(d))
		}
	}
	r.packed = value
	return nil
}

// DeciSum is the exact week total in decihours.
func (r *TimesheetRow) DeciSum() int {
	sum := 0
	for d := 0; d < DaysInWeek; d++ {
		sum += r.decihour(d)
	}
	return sum
}

// Sum is the week total in hours.
func (r *TimesheetRow) Sum() float64 {
	return ToHour(r.DeciSum())
}

func (r *TimesheetRow) String() string {
	hours := r.Hours()
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%.1f", h)
	}
	return fmt.Sprintf("%d %s [%s]", r.projectID, r.WorkPackageID, strings.Join(parts, ", "))
}
