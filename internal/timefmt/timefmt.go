// Package timefmt parses the date/time spellings found in lab and field
// exports and renders the canonical forms used in activity ids and output.
package timefmt

import (
	"fmt"
	"time"
)

// Layouts are tried in order; the first full match wins.
//
//	1/21/2020 6:00
//	1/21/2020 6:00:00 AM
//	1/21/20 6:00
//	Jan 21, 2020, 6:00 AM
//	Jan 21, 2020, 6:00
//	20200121
//	1/21/2020
//	2020/01/21 6:00 AM
var Layouts = []string{
	"1/2/2006 3:04",
	"1/2/2006 3:04:05 PM",
	"1/2/06 3:04",
	"Jan 2, 2006, 3:04 PM",
	"Jan 2, 2006, 3:04",
	"20060102",
	"1/2/2006",
	"2006/1/2 3:04 PM",
}

// DateParseError is returned when no layout matches the whole value.
type DateParseError struct {
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unable to create date/time from '%s'", e.Value)
}

// Parse returns the value as a naive local timestamp (UTC location, no zone math).
func Parse(value string) (time.Time, error) {
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &DateParseError{Value: value}
}

// YearMonthDay renders YYYYMMDD, the form used in activity ids and file names.
func YearMonthDay(t time.Time) string { return t.Format("20060102") }

// AccessDate renders MM/DD/YYYY.
func AccessDate(t time.Time) string { return t.Format("01/02/2006") }

// AccessTime renders HH:MM:00 AM/PM; seconds are always zeroed.
func AccessTime(t time.Time) string { return t.Format("03:04:00 PM") }

// ClockTime renders HH:MM:SS for messages.
func ClockTime(t time.Time) string { return t.Format("15:04:05") }

// SameDay truncates t to midnight.
func SameDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole-day distance between the calendar dates of a and b.
func DaysBetween(a, b time.Time) int {
	d := SameDay(a).Sub(SameDay(b)).Hours() / 24
	if d < 0 {
		d = -d
	}
	return int(d + 0.5)
}

// MinutesApart compares only the hour and minute fields, like a wall clock.
func MinutesApart(a, b time.Time) int {
	d := (a.Hour()-b.Hour())*60 + a.Minute() - b.Minute()
	if d < 0 {
		d = -d
	}
	return d
}
