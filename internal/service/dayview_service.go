package service

import (
	"context"
	"time"

	"allme/internal/dateutil"
	"allme/internal/model"
	"allme/internal/repository"
	"allme/internal/timeline"
)

// DayViewService assembles the day timeline: the timed tasks of one calendar
// day laid out into non-overlapping columns, plus the untimed ones as an
// all-day list.
type DayViewService struct {
	repo *repository.TaskRepository
}

func NewDayViewService(repo *repository.TaskRepository) *DayViewService {
	return &DayViewService{repo: repo}
}

// DayView is everything a renderer needs for one day.
type DayView struct {
	Date   time.Time
	Timed  []TimedTask
	AllDay []model.Task
}

// TimedTask pairs a task with its column geometry. EndMinute reflects the
// true stored end time, or start plus one hour when none was given.
type TimedTask struct {
	Task        model.Task
	Column      int
	ColumnCount int
	StartMinute int
	EndMinute   int
}

// Build fetches the records due on the given date and lays out the timed
// subset. Tasks without a start time, including any with an unparsable
// stored time, go to the all-day list.
func (s *DayViewService) Build(ctx context.Context, ownerID string, date time.Time) (*DayView, error) {
	day := dateutil.DateOf(date)
	tasks, err := s.repo.ListByDueDate(ctx, ownerID, day)
	if err != nil {
		return nil, err
	}

	view := &DayView{Date: day}
	byID := make(map[uint]model.Task)
	var slots []timeline.Slot

	for _, task := range tasks {
		if !task.IsTimed() {
			view.AllDay = append(view.AllDay, task)
			continue
		}
		start, err := dateutil.ParseClock(task.StartTime)
		if err != nil {
			view.AllDay = append(view.AllDay, task)
			continue
		}
		end := -1
		if task.EndTime != "" {
			if m, err := dateutil.ParseClock(task.EndTime); err == nil {
				end = m
			}
		}
		slots = append(slots, timeline.Slot{ID: task.ID, StartMinute: start, EndMinute: end})
		byID[task.ID] = task
	}

	for _, p := range timeline.Layout(slots) {
		view.Timed = append(view.Timed, TimedTask{
			Task:        byID[p.ID],
			Column:      p.Column,
			ColumnCount: p.ColumnCount,
			StartMinute: p.StartMinute,
			EndMinute:   p.EndMinute,
		})
	}
	return view, nil
}
