package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"allme/internal/dateutil"
	"allme/internal/model"
	"allme/internal/recurrence"
	"allme/internal/repository"
)

// DefaultHorizonDays bounds how far ahead occurrences are materialized,
// regardless of a rule's end date. Series outliving the horizon pick up
// their remaining occurrences through ExtendSeries.
const DefaultHorizonDays = 90

// TaskInput represents the content fields of a new task.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time // required for plain tasks, ignored for series
	StartTime   string     // "HH:MM", optional
	EndTime     string     // "HH:MM", optional, needs StartTime
	Priority    model.Priority
}

// RecurrenceInput is the user-authored weekly repeat rule.
type RecurrenceInput struct {
	Weekdays  model.WeekdaySet
	StartDate *time.Time // first eligible date; defaults to the request day
	EndDate   *time.Time // inclusive; generation is horizon-capped either way
}

// TaskPatch updates a subset of a task's fields. Nil members stay untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	StartTime   *string
	EndTime     *string
	Priority    *model.Priority
	Status      *model.Status
}

// TaskService owns the lifecycle of plain tasks and recurring series. A
// series lives as one hidden template row holding the rule plus one visible
// row per materialized occurrence, all sharing a series id.
type TaskService struct {
	repo        *repository.TaskRepository
	horizonDays int
}

func NewTaskService(repo *repository.TaskRepository, horizonDays int) *TaskService {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &TaskService{repo: repo, horizonDays: horizonDays}
}

// CreateTask creates a single non-recurring task.
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, input TaskInput) (*model.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.DueDate == nil {
		return nil, fmt.Errorf("%w: due date is required", ErrValidation)
	}

	task := newTask(ownerID, input)
	due := dateutil.DateOf(*input.DueDate)
	task.DueDate = &due

	if err := s.repo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateSeries creates the template record for a recurring task, then
// materializes one occurrence row per date the rule produces within the
// generation window [today, today+horizon]. Both writes happen in one
// transaction. Returns the template, which carries the fresh series id, and
// the number of occurrences created. A rule that produces no dates inside
// the window is valid: the template alone is created.
func (s *TaskService) CreateSeries(ctx context.Context, ownerID string, input TaskInput, rule RecurrenceInput, now time.Time) (*model.Task, int, error) {
	if err := validateInput(input); err != nil {
		return nil, 0, err
	}
	if rule.Weekdays.Empty() {
		return nil, 0, fmt.Errorf("%w: recurrence needs at least one weekday", ErrValidation)
	}

	seriesID := uuid.NewString()
	template := newTask(ownerID, input)
	template.IsRecurring = true
	template.RecurrenceDays = rule.Weekdays.Normalize()
	template.SeriesID = &seriesID
	if rule.EndDate != nil {
		end := dateutil.DateOf(*rule.EndDate)
		template.RecurrenceEndDate = &end
	}

	today := dateutil.DateOf(now)
	origin := today
	if rule.StartDate != nil {
		origin = dateutil.DateOf(*rule.StartDate)
	}
	// the origin is part of the rule and must survive on the template, or a
	// later window extension could generate occurrences before it
	template.RecurrenceStartDate = &origin

	dates := recurrence.Expand(recurrence.Rule{
		Weekdays: template.RecurrenceDays,
		Origin:   origin,
		Until:    template.RecurrenceEndDate,
	}, today, today.AddDate(0, 0, s.horizonDays))

	occurrences := make([]model.Task, 0, len(dates))
	for _, d := range dates {
		occ := template
		occ.DueDate = &d
		occurrences = append(occurrences, occ)
	}

	if err := s.repo.CreateSeries(ctx, &template, occurrences); err != nil {
		return nil, 0, err
	}
	return &template, len(occurrences), nil
}

// GetTask fetches one record owned by the caller.
func (s *TaskService) GetTask(ctx context.Context, ownerID string, taskID uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, ownerID, taskID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return task, err
}

// UpdateTask applies a partial patch to one record.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID string, taskID uint, patch TaskPatch) (*model.Task, error) {
	task, err := s.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		due := dateutil.DateOf(*patch.DueDate)
		task.DueDate = &due
	}
	if patch.StartTime != nil {
		task.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		task.EndTime = *patch.EndTime
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		setStatus(task, *patch.Status, time.Now())
	}

	if task.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if err := validateTimes(task.StartTime, task.EndTime); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, task); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: an occurrence already exists on that date", ErrValidation)
		}
		return nil, err
	}
	return task, nil
}

// CompleteOccurrence marks exactly one record done. Siblings in the same
// series are never touched.
func (s *TaskService) CompleteOccurrence(ctx context.Context, ownerID string, taskID uint, completedAt time.Time) (*model.Task, error) {
	task, err := s.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	setStatus(task, model.StatusDone, completedAt)
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteSeries marks every record of the series done, template and
// future-dated occurrences included. Idempotent: a second call affects zero
// rows. A series id the caller does not own also affects zero rows rather
// than erroring, so existence is not leaked.
func (s *TaskService) CompleteSeries(ctx context.Context, ownerID, seriesID string, completedAt time.Time) (int64, error) {
	return s.repo.CompleteSeries(ctx, ownerID, seriesID, completedAt)
}

// DeleteOccurrence removes exactly one record.
func (s *TaskService) DeleteOccurrence(ctx context.Context, ownerID string, taskID uint) error {
	return s.repo.Delete(ctx, ownerID, taskID)
}

// DeleteSeries removes every record sharing the series id. Same zero-row
// semantics as CompleteSeries for non-owned series.
func (s *TaskService) DeleteSeries(ctx context.Context, ownerID, seriesID string) (int64, error) {
	return s.repo.DeleteSeries(ctx, ownerID, seriesID)
}

// ListVisibleTasks returns every user-facing record: plain tasks and
// occurrences, never templates. from/to bound the due date when set, which
// is what the month grid uses.
func (s *TaskService) ListVisibleTasks(ctx context.Context, ownerID string, from, to *time.Time) ([]model.Task, error) {
	var fromDay, toDay *time.Time
	if from != nil {
		d := dateutil.DateOf(*from)
		fromDay = &d
	}
	if to != nil {
		d := dateutil.DateOf(*to)
		toDay = &d
	}
	return s.repo.ListVisible(ctx, ownerID, fromDay, toDay)
}

// ExtendSeries materializes the occurrences every live series is still
// missing beyond its high-water mark, up to the current horizon. The
// template's rule fields are the source of truth, so a series whose
// occurrence write failed after the template was committed gets repaired
// here too. Returns the number of rows created.
func (s *TaskService) ExtendSeries(ctx context.Context, now time.Time) (int, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return 0, err
	}

	today := dateutil.DateOf(now)
	horizon := today.AddDate(0, 0, s.horizonDays)

	total := 0
	for _, tpl := range templates {
		existing, err := s.repo.ListSeriesDueDates(ctx, *tpl.SeriesID)
		if err != nil {
			return total, err
		}

		// Never regenerate at or below the high-water mark: a gap there is a
		// deleted occurrence, not a missing one. A series with no occurrence
		// rows at all is the repair case and starts from today.
		windowStart := today
		if len(existing) > 0 {
			windowStart = dateutil.DateOf(existing[len(existing)-1]).AddDate(0, 0, 1)
		}

		rule := recurrence.Rule{
			Weekdays: tpl.RecurrenceDays,
			Origin:   windowStart,
			Until:    tpl.RecurrenceEndDate,
		}
		if tpl.RecurrenceStartDate != nil {
			rule.Origin = *tpl.RecurrenceStartDate
		}

		dates := recurrence.Expand(rule, windowStart, horizon)
		if len(dates) == 0 {
			continue
		}

		occurrences := make([]model.Task, 0, len(dates))
		for _, d := range dates {
			occ := tpl
			occ.ID = 0
			occ.DueDate = &d
			occ.Status = model.StatusTodo
			occ.CompletedAt = nil
			occ.CreatedAt = time.Time{}
			occ.UpdatedAt = time.Time{}
			occurrences = append(occurrences, occ)
		}
		if err := s.repo.InsertOccurrences(ctx, occurrences); err != nil {
			return total, err
		}
		total += len(occurrences)
	}
	return total, nil
}

func newTask(ownerID string, input TaskInput) model.Task {
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	return model.Task{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Priority:    priority,
		Status:      model.StatusTodo,
	}
}

func setStatus(task *model.Task, status model.Status, at time.Time) {
	task.Status = status
	if status == model.StatusDone {
		task.CompletedAt = &at
	} else {
		task.CompletedAt = nil
	}
}

func validateInput(input TaskInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return validateTimes(input.StartTime, input.EndTime)
}

func validateTimes(start, end string) error {
	if start == "" {
		if end != "" {
			return fmt.Errorf("%w: end time without start time", ErrValidation)
		}
		return nil
	}
	startMin, err := dateutil.ParseClock(start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if end == "" {
		return nil
	}
	endMin, err := dateutil.ParseClock(end)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if endMin <= startMin {
		return fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	return nil
}
