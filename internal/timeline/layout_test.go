package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byID(placements []Placement) map[uint]Placement {
	out := make(map[uint]Placement, len(placements))
	for _, p := range placements {
		out[p.ID] = p
	}
	return out
}

func TestLayoutSingleTask(t *testing.T) {
	got := Layout([]Slot{{ID: 1, StartMinute: 540, EndMinute: 600}})
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Column)
	assert.Equal(t, 1, got[0].ColumnCount)
}

func TestLayoutEmpty(t *testing.T) {
	assert.Empty(t, Layout(nil))
	assert.Empty(t, Layout([]Slot{}))
}

func TestLayoutBridgedGroup(t *testing.T) {
	// A 9:00-10:00, B 9:30-9:45, C 9:50-11:00. A and C never intersect, but
	// B bridges them, so all three share one group of three columns.
	got := byID(Layout([]Slot{
		{ID: 1, StartMinute: 540, EndMinute: 600},
		{ID: 2, StartMinute: 570, EndMinute: 585},
		{ID: 3, StartMinute: 590, EndMinute: 660},
	}))
	require.Len(t, got, 3)
	for id, p := range got {
		assert.Equal(t, 3, p.ColumnCount, "task %d", id)
	}
	assert.Equal(t, 0, got[1].Column)
	assert.Equal(t, 1, got[2].Column)
	assert.Equal(t, 2, got[3].Column)
}

func TestLayoutDisjointGroups(t *testing.T) {
	got := byID(Layout([]Slot{
		{ID: 1, StartMinute: 540, EndMinute: 600},
		{ID: 2, StartMinute: 600, EndMinute: 660}, // touching is not overlapping
		{ID: 3, StartMinute: 610, EndMinute: 640},
	}))
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[1].ColumnCount)
	assert.Equal(t, 2, got[2].ColumnCount)
	assert.Equal(t, 2, got[3].ColumnCount)
	assert.Equal(t, 0, got[2].Column)
	assert.Equal(t, 1, got[3].Column)
}

func TestLayoutMissingEndGetsDefaultDuration(t *testing.T) {
	got := byID(Layout([]Slot{
		{ID: 1, StartMinute: 540, EndMinute: -1},
		{ID: 2, StartMinute: 580, EndMinute: 590},
	}))
	require.Len(t, got, 2)
	assert.Equal(t, 600, got[1].EndMinute)
	assert.Equal(t, 2, got[1].ColumnCount, "synthesized end must drive grouping")
	assert.Equal(t, 2, got[2].ColumnCount)
}

func TestLayoutSkipsUntimed(t *testing.T) {
	got := Layout([]Slot{
		{ID: 1, StartMinute: -1, EndMinute: -1},
		{ID: 2, StartMinute: 540, EndMinute: 600},
	})
	require.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].ID)
}

func TestLayoutStableTieOrder(t *testing.T) {
	got := byID(Layout([]Slot{
		{ID: 7, StartMinute: 540, EndMinute: 600},
		{ID: 3, StartMinute: 540, EndMinute: 570},
	}))
	require.Len(t, got, 2)
	// equal starts keep input order
	assert.Equal(t, 0, got[7].Column)
	assert.Equal(t, 1, got[3].Column)
}

func TestLayoutZeroDurationKeepsTrueInterval(t *testing.T) {
	got := Layout([]Slot{{ID: 1, StartMinute: 540, EndMinute: 540}})
	require.Len(t, got, 1)
	assert.Equal(t, 540, got[0].StartMinute)
	assert.Equal(t, 540, got[0].EndMinute)
	assert.Equal(t, 1, got[0].ColumnCount)
}

func TestLayoutNoColumnShared(t *testing.T) {
	slots := []Slot{
		{ID: 1, StartMinute: 480, EndMinute: 540},
		{ID: 2, StartMinute: 500, EndMinute: 700},
		{ID: 3, StartMinute: 520, EndMinute: 560},
		{ID: 4, StartMinute: 545, EndMinute: 615},
		{ID: 5, StartMinute: 630, EndMinute: 650},
		{ID: 6, StartMinute: 720, EndMinute: 780},
	}
	placements := Layout(slots)
	require.Len(t, placements, len(slots))

	for i, a := range placements {
		for _, b := range placements[i+1:] {
			if a.Column != b.Column {
				continue
			}
			overlap := a.StartMinute < b.EndMinute && b.StartMinute < a.EndMinute
			assert.False(t, overlap, "tasks %d and %d share column %d but overlap", a.ID, b.ID, a.Column)
		}
	}
}
