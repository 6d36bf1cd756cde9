// Package timeline assigns side-by-side columns to same-day timed tasks so a
// renderer can draw them without visual collision.
package timeline

import "sort"

// defaultDurationMinutes is assumed for tasks with a start but no end time.
const defaultDurationMinutes = 60

// Slot is one timed task to place. Minutes count from midnight. A negative
// EndMinute means the task has no end time and gets the default duration; a
// negative StartMinute means the task is untimed and is skipped (callers
// normally keep those in a separate all-day list).
type Slot struct {
	ID          uint
	StartMinute int
	EndMinute   int
}

// Placement is a Slot with its assigned column geometry. Within one overlap
// group, columns are 0-indexed in order of start time, and every member
// shares the same ColumnCount, so width = 1/ColumnCount and left =
// Column/ColumnCount place the group side by side.
type Placement struct {
	Slot
	Column      int
	ColumnCount int
}

// Layout sweeps the slots left to right and partitions them into maximal
// overlap groups. A group is chained by the running max end seen so far, not
// by pairwise overlap: given A 9:00-10:00, B 9:30-9:45 and C 9:50-11:00, B
// bridges A and C into one group even though A and C never intersect, which
// is what keeps C out of A's column. Ties on start time keep input order, so
// the result is deterministic across re-renders.
func Layout(slots []Slot) []Placement {
	timed := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.StartMinute < 0 {
			continue
		}
		if s.EndMinute < 0 {
			s.EndMinute = s.StartMinute + defaultDurationMinutes
		}
		timed = append(timed, s)
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].StartMinute < timed[j].StartMinute
	})

	placements := make([]Placement, 0, len(timed))
	var group []Slot
	groupEnd := 0

	flush := func() {
		for col, s := range group {
			placements = append(placements, Placement{Slot: s, Column: col, ColumnCount: len(group)})
		}
		group = group[:0]
	}

	for _, s := range timed {
		if len(group) > 0 && s.StartMinute >= groupEnd {
			flush()
		}
		group = append(group, s)
		if len(group) == 1 || s.EndMinute > groupEnd {
			groupEnd = s.EndMinute
		}
	}
	flush()

	return placements
}
