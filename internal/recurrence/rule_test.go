package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allme/internal/dateutil"
	"allme/internal/model"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func formatAll(dates []time.Time) []string {
	if len(dates) == 0 {
		return nil
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = dateutil.FormatDate(d)
	}
	return out
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name        string
		weekdays    model.WeekdaySet
		origin      string
		until       string
		windowStart string
		windowEnd   string
		want        []string
	}{
		{
			name:        "mon and wed over two weeks",
			weekdays:    model.WeekdaySet{dateutil.Mon, dateutil.Wed},
			origin:      "2026-01-05", // a Monday
			windowStart: "2026-01-05",
			windowEnd:   "2026-01-18",
			want:        []string{"2026-01-05", "2026-01-07", "2026-01-12", "2026-01-14"},
		},
		{
			name:        "origin inside window trims the head",
			weekdays:    model.WeekdaySet{dateutil.Mon, dateutil.Wed},
			origin:      "2026-01-08",
			windowStart: "2026-01-05",
			windowEnd:   "2026-01-18",
			want:        []string{"2026-01-12", "2026-01-14"},
		},
		{
			name:        "end date trims the tail",
			weekdays:    model.WeekdaySet{dateutil.Mon, dateutil.Wed},
			origin:      "2026-01-05",
			until:       "2026-01-12",
			windowStart: "2026-01-05",
			windowEnd:   "2026-01-18",
			want:        []string{"2026-01-05", "2026-01-07", "2026-01-12"},
		},
		{
			name:        "origin after window end yields nothing",
			weekdays:    model.WeekdaySet{dateutil.Mon},
			origin:      "2026-02-01",
			windowStart: "2026-01-05",
			windowEnd:   "2026-01-18",
			want:        nil,
		},
		{
			name:        "end date before window start yields nothing",
			weekdays:    model.WeekdaySet{dateutil.Mon},
			origin:      "2026-01-01",
			until:       "2026-01-02",
			windowStart: "2026-01-05",
			windowEnd:   "2026-01-18",
			want:        nil,
		},
		{
			name: "all seven days emits every date",
			weekdays: model.WeekdaySet{
				dateutil.Sun, dateutil.Mon, dateutil.Tue, dateutil.Wed,
				dateutil.Thu, dateutil.Fri, dateutil.Sat,
			},
			origin:      "2026-01-05",
			windowStart: "2026-01-05",
			windowEnd:   "2026-01-09",
			want:        []string{"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08", "2026-01-09"},
		},
		{
			name:        "single weekend day",
			weekdays:    model.WeekdaySet{dateutil.Sun},
			origin:      "2026-01-05",
			windowStart: "2026-01-05",
			windowEnd:   "2026-01-18",
			want:        []string{"2026-01-11", "2026-01-18"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := Rule{Weekdays: tt.weekdays, Origin: date(t, tt.origin)}
			if tt.until != "" {
				u := date(t, tt.until)
				rule.Until = &u
			}
			got := Expand(rule, date(t, tt.windowStart), date(t, tt.windowEnd))
			assert.Equal(t, tt.want, formatAll(got))
		})
	}
}

func TestExpandEveryDateMatchesRule(t *testing.T) {
	rule := Rule{
		Weekdays: model.WeekdaySet{dateutil.Tue, dateutil.Fri},
		Origin:   date(t, "2026-03-03"),
	}
	ws, we := date(t, "2026-03-01"), date(t, "2026-04-30")

	got := Expand(rule, ws, we)
	require.NotEmpty(t, got)

	prev := time.Time{}
	for _, d := range got {
		assert.True(t, rule.Weekdays.Contains(dateutil.WeekdayOf(d)))
		assert.False(t, d.Before(rule.Origin))
		assert.False(t, d.Before(ws))
		assert.False(t, d.After(we))
		assert.True(t, d.After(prev), "ascending without duplicates")
		prev = d
	}
}

func TestExpandWindowMonotonicity(t *testing.T) {
	rule := Rule{
		Weekdays: model.WeekdaySet{dateutil.Mon, dateutil.Thu, dateutil.Sat},
		Origin:   date(t, "2026-01-01"),
	}

	wide := Expand(rule, date(t, "2026-01-01"), date(t, "2026-03-31"))
	narrow := Expand(rule, date(t, "2026-01-15"), date(t, "2026-02-15"))

	inWide := make(map[string]bool, len(wide))
	for _, d := range wide {
		inWide[dateutil.FormatDate(d)] = true
	}
	for _, d := range narrow {
		assert.True(t, inWide[dateutil.FormatDate(d)], "narrow window must be a subset of the wide one")
	}
}
