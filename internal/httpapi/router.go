package httpapi

import "net/http"

// NewRouter wires the task surface onto a ServeMux.
func NewRouter(handler *TaskHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /tasks", handler.Create)
	mux.HandleFunc("GET /tasks", handler.List)
	mux.HandleFunc("GET /day", handler.Day)
	mux.HandleFunc("PATCH /tasks/{id}", handler.Update)
	mux.HandleFunc("POST /tasks/{id}/complete", handler.Complete)
	mux.HandleFunc("DELETE /tasks/{id}", handler.Delete)
	mux.HandleFunc("POST /series/{id}/complete", handler.CompleteSeries)
	mux.HandleFunc("DELETE /series/{id}", handler.DeleteSeries)

	return mux
}
