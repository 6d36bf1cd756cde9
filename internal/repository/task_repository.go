package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"allme/internal/model"
)

var (
	// ErrNotFound is returned when a lookup matches no record owned by the caller.
	ErrNotFound = errors.New("task not found")

	// ErrDuplicate is returned when a write would give a series two
	// occurrences on the same date.
	ErrDuplicate = errors.New("duplicate occurrence date")
)

// TaskRepository handles CRUD and series-wide bulk mutations for tasks.
// Every mutating query is scoped by owner id; a mismatched owner simply
// matches zero rows.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// CreateSeries writes the template and its occurrence rows in one
// transaction, so a failed bulk insert never leaves a half-written series.
func (r *TaskRepository) CreateSeries(ctx context.Context, template *model.Task, occurrences []model.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(template).Error; err != nil {
			return err
		}
		if len(occurrences) == 0 {
			return nil
		}
		return tx.Create(&occurrences).Error
	})
	if err != nil {
		return fmt.Errorf("create series: %w", err)
	}
	return nil
}

// InsertOccurrences bulk-creates already-built occurrence rows, used when a
// series window is re-extended.
func (r *TaskRepository) InsertOccurrences(ctx context.Context, occurrences []model.Task) error {
	if len(occurrences) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&occurrences).Error; err != nil {
		return fmt.Errorf("insert occurrences: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, ownerID string, taskID uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, taskID).First(&task).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find task: %w", err)
	}
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("save task: %w", ErrDuplicate)
		}
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// ListVisible returns all user-facing records for an owner: plain tasks and
// occurrence rows, never series templates. from/to bound DueDate when set.
func (r *TaskRepository) ListVisible(ctx context.Context, ownerID string, from, to *time.Time) ([]model.Task, error) {
	q := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("series_id IS NULL OR due_date IS NOT NULL")
	if from != nil {
		q = q.Where("due_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("due_date <= ?", *to)
	}

	var tasks []model.Task
	if err := q.Order("due_date, start_time, created_at").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list visible tasks: %w", err)
	}
	return tasks, nil
}

// ListByDueDate returns the visible records due on one calendar day.
func (r *TaskRepository) ListByDueDate(ctx context.Context, ownerID string, date time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND due_date = ?", ownerID, date).
		Order("start_time, created_at").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks by due date: %w", err)
	}
	return tasks, nil
}

// ListTemplates returns the rule-holding rows of every series that is still
// live, i.e. not completed as a whole.
func (r *TaskRepository) ListTemplates(ctx context.Context) ([]model.Task, error) {
	var templates []model.Task
	if err := r.db.WithContext(ctx).
		Where("series_id IS NOT NULL AND due_date IS NULL AND status <> ?", model.StatusDone).
		Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("list series templates: %w", err)
	}
	return templates, nil
}

// ListSeriesDueDates returns the due dates already materialized for a series.
func (r *TaskRepository) ListSeriesDueDates(ctx context.Context, seriesID string) ([]time.Time, error) {
	var dates []time.Time
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("series_id = ? AND due_date IS NOT NULL", seriesID).
		Order("due_date").
		Pluck("due_date", &dates).Error; err != nil {
		return nil, fmt.Errorf("list series due dates: %w", err)
	}
	return dates, nil
}

// CompleteSeries marks every not-yet-done record of the series as done.
// Already-done rows keep their original completion stamp, which makes the
// operation idempotent. Returns how many rows were newly completed; an
// unknown or non-owned series matches zero rows and is not an error.
func (r *TaskRepository) CompleteSeries(ctx context.Context, ownerID, seriesID string, completedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("owner_id = ? AND series_id = ? AND status <> ?", ownerID, seriesID, model.StatusDone).
		Updates(map[string]any{"status": model.StatusDone, "completed_at": completedAt})
	if res.Error != nil {
		return 0, fmt.Errorf("complete series: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes one record for the given owner.
func (r *TaskRepository) Delete(ctx context.Context, ownerID string, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, taskID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// DeleteSeries removes every record of the series, template included.
// Returns the number of rows removed; zero for a non-owned series.
func (r *TaskRepository) DeleteSeries(ctx context.Context, ownerID, seriesID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("owner_id = ? AND series_id = ?", ownerID, seriesID).
		Delete(&model.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete series: %w", res.Error)
	}
	return res.RowsAffected, nil
}
