package httpapi

import (
	"time"

	"allme/internal/dateutil"
	"allme/internal/model"
	"allme/internal/service"
)

// CreateTaskRequest creates either a plain task or, when IsRecurring is set,
// a whole series.
type CreateTaskRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	DueDate           string   `json:"dueDate,omitempty"`
	StartTime         string   `json:"startTime,omitempty"`
	EndTime           string   `json:"endTime,omitempty"`
	Priority          string   `json:"priority,omitempty"`
	IsRecurring       bool     `json:"isRecurring,omitempty"`
	RecurrenceDays    []string `json:"recurrenceDays,omitempty"`
	RecurrenceStart   string   `json:"recurrenceStart,omitempty"`
	RecurrenceEndDate string   `json:"recurrenceEndDate,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type TaskResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	SeriesID    string `json:"seriesId,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type CreateSeriesResponse struct {
	SeriesID        string `json:"seriesId"`
	OccurrenceCount int    `json:"occurrenceCount"`
}

// SeriesOpResponse reports how many rows a series-wide mutation touched.
type SeriesOpResponse struct {
	Affected int64 `json:"affected"`
}

type TimedTaskResponse struct {
	TaskResponse
	Column      int `json:"column"`
	ColumnCount int `json:"columnCount"`
	StartMinute int `json:"startMinute"`
	EndMinute   int `json:"endMinute"`
}

type DayViewResponse struct {
	Date   string              `json:"date"`
	Timed  []TimedTaskResponse `json:"timed"`
	AllDay []TaskResponse      `json:"allDay"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toTaskResponse(task model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		StartTime:   task.StartTime,
		EndTime:     task.EndTime,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
	}
	if task.DueDate != nil {
		resp.DueDate = dateutil.FormatDate(*task.DueDate)
	}
	if task.SeriesID != nil {
		resp.SeriesID = *task.SeriesID
	}
	if task.CompletedAt != nil {
		resp.CompletedAt = task.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

func toDayViewResponse(view *service.DayView) DayViewResponse {
	resp := DayViewResponse{
		Date:   dateutil.FormatDate(view.Date),
		Timed:  make([]TimedTaskResponse, 0, len(view.Timed)),
		AllDay: make([]TaskResponse, 0, len(view.AllDay)),
	}
	for _, tt := range view.Timed {
		resp.Timed = append(resp.Timed, TimedTaskResponse{
			TaskResponse: toTaskResponse(tt.Task),
			Column:       tt.Column,
			ColumnCount:  tt.ColumnCount,
			StartMinute:  tt.StartMinute,
			EndMinute:    tt.EndMinute,
		})
	}
	for _, task := range view.AllDay {
		resp.AllDay = append(resp.AllDay, toTaskResponse(task))
	}
	return resp
}
