// Package recurrence turns a compact weekly repeat rule into concrete dates.
package recurrence

import (
	"time"

	"allme/internal/dateutil"
	"allme/internal/model"
)

// Rule is a weekly repeat: which weekdays apply, starting no earlier than
// Origin, optionally bounded by Until (inclusive).
type Rule struct {
	Weekdays model.WeekdaySet
	Origin   time.Time
	Until    *time.Time
}

// Expand lists every date in [windowStart, windowEnd] whose weekday matches
// the rule, in ascending order without duplicates. The window always bounds
// the result regardless of Until; capping windows at a generation horizon is
// the caller's job. A degenerate window yields nil, never an error.
func Expand(r Rule, windowStart, windowEnd time.Time) []time.Time {
	start := dateutil.DateOf(windowStart)
	if origin := dateutil.DateOf(r.Origin); origin.After(start) {
		start = origin
	}
	end := dateutil.DateOf(windowEnd)
	if r.Until != nil {
		if until := dateutil.DateOf(*r.Until); until.Before(end) {
			end = until
		}
	}

	var dates []time.Time
	for d := range dateutil.EnumerateDays(start, end) {
		if r.Weekdays.Contains(dateutil.WeekdayOf(d)) {
			dates = append(dates, d)
		}
	}
	return dates
}
