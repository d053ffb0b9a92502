package todo

import (
	"context"
	"time"

	domain "github.com/example/todo-service/domain/todo"
)

// CreateTodoRequest is the request for creating a todo.
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// ListTodosRequest is the request for listing todos.
type ListTodosRequest struct{}

// ListTodosResponse is the response for listing todos.
type ListTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
	Total int            `json:"total"`
}

// ToggleTodoRequest is the request for toggling a todo.
type ToggleTodoRequest struct {
	TodoID string `json:"todo_id"`
}

// ToggleTodoResponse is the response for toggling a todo.
// Found is false when no todo has the requested identifier.
type ToggleTodoResponse struct {
	Todo  *TodoResponse `json:"todo,omitempty"`
	Found bool          `json:"found"`
}

// HealthRequest is the request for the todo module's health.
type HealthRequest struct{}

// HealthResponse reports whether the todo store can serve requests.
type HealthResponse struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message"`
	Backend string `json:"backend"`
}

// TodoResponse is the response for a single todo.
type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TodoPort defines the interface for todo operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the core domain.
type TodoPort interface {
	CreateTodo(ctx context.Context, title string) (*TodoResponse, error)
	ListTodos(ctx context.Context) (*ListTodosResponse, error)
	ToggleTodo(ctx context.Context, todoID string) (*TodoResponse, error)
	Health(ctx context.Context) (*HealthResponse, error)
}

func toTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt,
		CompletedAt: todo.CompletedAt,
	}
}
