package model

import "time"

// Priority buckets tasks for sorting and display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status is the completion state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Task is one persisted record. Three shapes share the table: a plain task
// (no SeriesID), a series template (SeriesID set, DueDate nil, holds the
// recurrence rule), and a materialized occurrence (SeriesID and DueDate set).
// Templates are never shown to users; occurrences are the only visible
// representation of a series.
type Task struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerID     string `gorm:"index"`
	Title       string
	Description string

	DueDate   *time.Time `gorm:"index:idx_series_due,unique"`
	StartTime string     // "HH:MM", empty when untimed
	EndTime   string     // "HH:MM", empty when open-ended

	IsRecurring         bool       `gorm:"default:false"`
	RecurrenceDays      WeekdaySet `gorm:"type:text"`
	RecurrenceStartDate *time.Time
	RecurrenceEndDate   *time.Time
	SeriesID            *string `gorm:"index;index:idx_series_due,unique"`

	Priority    Priority `gorm:"default:medium"`
	Status      Status   `gorm:"default:todo"`
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTemplate reports whether the record is the rule-holding row of a series.
func (t Task) IsTemplate() bool {
	return t.SeriesID != nil && t.DueDate == nil
}

// IsTimed reports whether the record carries a start time and belongs on the
// day timeline rather than in the all-day list.
func (t Task) IsTimed() bool {
	return t.StartTime != ""
}
