package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatDate(t *testing.T) {
	d, err := ParseDate("2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2026-01-05", FormatDate(d))

	// zero padding survives the round trip
	d, err = ParseDate("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", FormatDate(d))

	_, err = ParseDate("05.01.2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-1-5")
	assert.Error(t, err)
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2026, 6, 15, 18, 42, 3, 500, time.UTC)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), DateOf(ts))
}

func TestEnumerateDays(t *testing.T) {
	start, _ := ParseDate("2026-01-30")
	end, _ := ParseDate("2026-02-02")

	var got []string
	for d := range EnumerateDays(start, end) {
		got = append(got, FormatDate(d))
	}
	assert.Equal(t, []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"}, got)

	// the sequence is restartable
	seq := EnumerateDays(start, end)
	var first, second []string
	for d := range seq {
		first = append(first, FormatDate(d))
	}
	for d := range seq {
		second = append(second, FormatDate(d))
	}
	assert.Equal(t, got, first)
	assert.Equal(t, first, second)
}

func TestEnumerateDaysDegenerate(t *testing.T) {
	start, _ := ParseDate("2026-01-05")
	end, _ := ParseDate("2026-01-04")
	for range EnumerateDays(start, end) {
		t.Fatal("expected empty sequence when start > end")
	}

	// single-day window is inclusive on both ends
	count := 0
	for range EnumerateDays(start, start) {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestWeekdayOf(t *testing.T) {
	// 2026-01-05 is a Monday
	d, _ := ParseDate("2026-01-05")
	assert.Equal(t, Mon, WeekdayOf(d))
	assert.Equal(t, Sun, WeekdayOf(d.AddDate(0, 0, 6)))
}

func TestParseWeekday(t *testing.T) {
	w, err := ParseWeekday("wed")
	require.NoError(t, err)
	assert.Equal(t, Wed, w)

	_, err = ParseWeekday("Wednesday")
	assert.Error(t, err)
	_, err = ParseWeekday("")
	assert.Error(t, err)
}

func TestClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)
	assert.Equal(t, "09:30", FormatClock(570))
	assert.Equal(t, "00:00", FormatClock(0))

	_, err = ParseClock("9:30")
	assert.Error(t, err, "unpadded hours are not canonical")
	_, err = ParseClock("09:3")
	assert.Error(t, err)
	_, err = ParseClock("0930")
	assert.Error(t, err)
	_, err = ParseClock("25:00")
	assert.Error(t, err)
}
