package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"allme/internal/dateutil"
	"allme/internal/model"
	"allme/internal/service"
)

// ownerHeader carries the caller's identity. Authenticating it is an
// upstream concern; here it only scopes every query.
const ownerHeader = "X-Owner-ID"

// TaskHandler exposes the task read/write surface over HTTP.
type TaskHandler struct {
	tasks *service.TaskService
	days  *service.DayViewService
}

func NewTaskHandler(tasks *service.TaskService, days *service.DayViewService) *TaskHandler {
	return &TaskHandler{tasks: tasks, days: days}
}

// POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Priority:    model.Priority(req.Priority),
	}
	if req.DueDate != "" {
		due, err := dateutil.ParseDate(req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		input.DueDate = &due
	}

	if !req.IsRecurring {
		task, err := h.tasks.CreateTask(r.Context(), ownerID, input)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTaskResponse(*task))
		return
	}

	rule := service.RecurrenceInput{}
	for _, code := range req.RecurrenceDays {
		wd, err := dateutil.ParseWeekday(code)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rule.Weekdays = append(rule.Weekdays, wd)
	}
	if req.RecurrenceStart != "" {
		start, err := dateutil.ParseDate(req.RecurrenceStart)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rule.StartDate = &start
	}
	if req.RecurrenceEndDate != "" {
		end, err := dateutil.ParseDate(req.RecurrenceEndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rule.EndDate = &end
	}

	template, count, err := h.tasks.CreateSeries(r.Context(), ownerID, input, rule, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateSeriesResponse{
		SeriesID:        *template.SeriesID,
		OccurrenceCount: count,
	})
}

// GET /tasks?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var from, to *time.Time
	if s := r.URL.Query().Get("from"); s != "" {
		d, err := dateutil.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		from = &d
	}
	if s := r.URL.Query().Get("to"); s != "" {
		d, err := dateutil.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		to = &d
	}

	tasks, err := h.tasks.ListVisibleTasks(r.Context(), ownerID, from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, toTaskResponse(task))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /day?date=YYYY-MM-DD
func (h *TaskHandler) Day(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}
	date, err := dateutil.ParseDate(dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.days.Build(r.Context(), ownerID, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayViewResponse(view))
}

// PATCH /tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if req.DueDate != nil {
		due, err := dateutil.ParseDate(*req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.DueDate = &due
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.Status != nil {
		s := model.Status(*req.Status)
		patch.Status = &s
	}

	task, err := h.tasks.UpdateTask(r.Context(), ownerID, id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(*task))
}

// POST /tasks/{id}/complete
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.CompleteOccurrence(r.Context(), ownerID, id, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(*task))
}

// DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.DeleteOccurrence(r.Context(), ownerID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /series/{id}/complete
func (h *TaskHandler) CompleteSeries(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	count, err := h.tasks.CompleteSeries(r.Context(), ownerID, r.PathValue("id"), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SeriesOpResponse{Affected: count})
}

// DELETE /series/{id}
func (h *TaskHandler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	count, err := h.tasks.DeleteSeries(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SeriesOpResponse{Affected: count})
}

func owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := r.Header.Get(ownerHeader)
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, ownerHeader+" header is required")
		return "", false
	}
	return ownerID, true
}

func taskID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return uint(id), true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, service.ErrNotFound.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
