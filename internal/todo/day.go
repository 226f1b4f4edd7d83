package todo

import (
	"fmt"
	"time"
)

// Day is a calendar day in local time, with no time-of-day component.
// Two instants belong to the same Day iff their local year, month and day
// all match, regardless of time zone offset or time of day.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day of t, decomposed in local time. This is
// the only way instants are mapped to days: a store timestamp carrying a
// different offset still lands on the day it reads as on this machine's
// wall clock.
func DayOf(t time.Time) Day {
	year, month, day := t.In(time.Local).Date()
	return Day{Year: year, Month: month, Day: day}
}

// Today returns the calendar day of the given instant, usually time.Now().
func Today(now time.Time) Day {
	return DayOf(now)
}

// ParseDay parses a YYYY-MM-DD date token as used in view URLs.
// The token is interpreted as a local calendar day.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DayOf(t), nil
}

// String renders the day as a YYYY-MM-DD token.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns local midnight at the start of the day. Tasks added while
// viewing a specific day get this as their creation timestamp.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// AddDays returns the day n days after d (negative n goes backwards).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Contains reports whether the instant t falls on this calendar day.
func (d Day) Contains(t time.Time) bool {
	return DayOf(t) == d
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d == Day{}
}
