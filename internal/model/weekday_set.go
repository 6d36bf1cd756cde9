package model

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"

	"allme/internal/dateutil"
)

// WeekdaySet is an unordered set of weekday codes. At rest it is a single
// text column of comma-joined codes ("mon,wed,fri").
type WeekdaySet []dateutil.Weekday

func (s WeekdaySet) Empty() bool {
	return len(s) == 0
}

func (s WeekdaySet) Contains(w dateutil.Weekday) bool {
	for _, d := range s {
		if d == w {
			return true
		}
	}
	return false
}

// Normalize returns a copy with duplicates dropped and codes in sun..sat
// order, so that every row of a series stores the rule identically.
func (s WeekdaySet) Normalize() WeekdaySet {
	out := make(WeekdaySet, 0, len(s))
	for _, d := range s {
		if !out.Contains(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return dateutil.WeekdayIndex(out[i]) < dateutil.WeekdayIndex(out[j])
	})
	return out
}

// Value implements driver.Valuer.
func (s WeekdaySet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = string(d)
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner.
func (s *WeekdaySet) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan weekday set: unsupported type %T", src)
	}
	if raw == "" {
		*s = nil
		return nil
	}
	parts := strings.Split(raw, ",")
	set := make(WeekdaySet, 0, len(parts))
	for _, p := range parts {
		d, err := dateutil.ParseWeekday(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("scan weekday set: %w", err)
		}
		set = append(set, d)
	}
	*s = set
	return nil
}
