package api

import "time"

// CreateTodoRequest is the HTTP request for creating a todo.
// Title is a pointer so that a missing field can be told apart from an empty one.
type CreateTodoRequest struct {
	Title *string `json:"title"`
}

// TodoResponse is the HTTP response for a single todo.
type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
// It never carries internal error text.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
