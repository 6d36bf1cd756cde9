// Package dateutil provides naive calendar-date and time-of-day arithmetic.
//
// Dates are plain calendar days anchored at midnight UTC so that equality
// and AddDate behave; no timezone conversion ever happens. Times of day are
// zero-padded 24-hour HH:MM strings, or minutes since midnight when a
// numeric form is needed.
package dateutil

import (
	"fmt"
	"iter"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a canonical YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// FormatDate is the inverse of ParseDate, zero-padded.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DateOf strips the time-of-day part, re-anchoring at midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EnumerateDays yields every day from start to end, inclusive on both ends.
// The sequence is pure and can be ranged over any number of times; it is
// empty when start is after end.
func EnumerateDays(start, end time.Time) iter.Seq[time.Time] {
	last := DateOf(end)
	return func(yield func(time.Time) bool) {
		for d := DateOf(start); !d.After(last); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// ParseClock converts a zero-padded HH:MM string into minutes since midnight.
func ParseClock(s string) (int, error) {
	// time.Parse would accept unpadded hours; the at-rest format is strict
	if len(s) != len(ClockLayout) || s[2] != ':' {
		return 0, fmt.Errorf("parse clock %q: want HH:MM", s)
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Weekday is a three-letter lowercase weekday code, as stored at rest.
type Weekday string

const (
	Sun Weekday = "sun"
	Mon Weekday = "mon"
	Tue Weekday = "tue"
	Wed Weekday = "wed"
	Thu Weekday = "thu"
	Fri Weekday = "fri"
	Sat Weekday = "sat"
)

// weekdayCodes is indexed by time.Weekday (Sunday = 0).
var weekdayCodes = [...]Weekday{Sun, Mon, Tue, Wed, Thu, Fri, Sat}

// WeekdayOf maps a date to its weekday code.
func WeekdayOf(d time.Time) Weekday {
	return weekdayCodes[int(d.Weekday())]
}

// ParseWeekday validates a weekday code arriving from outside the process.
func ParseWeekday(s string) (Weekday, error) {
	for _, c := range weekdayCodes {
		if Weekday(s) == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

// WeekdayIndex returns the position of a code in the sun..sat week, used for
// canonical ordering of weekday sets. Unknown codes sort last.
func WeekdayIndex(w Weekday) int {
	for i, c := range weekdayCodes {
		if w == c {
			return i
		}
	}
	return len(weekdayCodes)
}
