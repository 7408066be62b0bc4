package attendance

import (
	"math"
	"time"
)

// Policy holds the derivation rules for a working day: arrivals after the
// cutoff are late, and days under HalfDayHours worked are half-days.
type Policy struct {
	LateCutoffHour   int
	LateCutoffMinute int
	HalfDayHours     float64
}

// DefaultPolicy is the 09:30 cutoff / 4 hour half-day rule.
func DefaultPolicy() Policy {
	return Policy{
		LateCutoffHour:   9,
		LateCutoffMinute: 30,
		HalfDayHours:     4,
	}
}

// CheckInStatus derives the status for a fresh check-in: late when the
// local time-of-day is strictly after the cutoff, present otherwise.
func (p Policy) CheckInStatus(checkIn time.Time) string {
	hour, minute := checkIn.Hour(), checkIn.Minute()
	if hour > p.LateCutoffHour || (hour == p.LateCutoffHour && minute > p.LateCutoffMinute) {
		return StatusLate
	}
	return StatusPresent
}

// CheckOutResult derives the final status and worked hours for a check-out.
// A half-day overrides whatever the check-in derived, late included.
// Check-outs before the check-in are rejected outright rather than
// propagating a negative duration.
func (p Policy) CheckOutResult(checkIn, checkOut time.Time, checkInStatus string) (status string, totalHours float64, err error) {
	if checkOut.Before(checkIn) {
		return "", 0, ErrNegativeDuration
	}

	totalHours = RoundHours(checkOut.Sub(checkIn).Hours())
	status = checkInStatus
	if totalHours < p.HalfDayHours {
		status = StatusHalfDay
	}
	return status, totalHours, nil
}

// RoundHours rounds a duration in hours to two decimal places.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// DayOf zeroes the time-of-day, giving the calendar-day key a record is
// stored under.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WorkingDays counts the Monday-Friday days in the inclusive range. It is
// the denominator for implied absence: absent = workingDays - recorded days.
func WorkingDays(start, end time.Time) int {
	count := 0
	for d := DayOf(start); !d.After(DayOf(end)); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// MonthRange returns the first and last calendar day of the given month.
func MonthRange(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, -1)
	return start, end
}
