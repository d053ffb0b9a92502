package todo

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/todo-service/domain/todo"
	"github.com/example/todo-service/events"
	"github.com/go-monolith/mono"
)

// createTodo handles the create-todo service request.
func (m *Module) createTodo(ctx context.Context, req CreateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	todo, err := m.store.Create(ctx, req.Title)
	if err != nil {
		m.logger.Error("Failed to create todo", "error", err)
		return TodoResponse{}, fmt.Errorf("failed to create todo: %w", err)
	}

	m.publishCreated(todo)
	return toTodoResponse(todo), nil
}

// listTodos handles the list-todos service request.
func (m *Module) listTodos(ctx context.Context, _ ListTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	todos, err := m.store.List(ctx)
	if err != nil {
		m.logger.Error("Failed to list todos", "error", err)
		return ListTodosResponse{}, fmt.Errorf("failed to list todos: %w", err)
	}

	response := ListTodosResponse{
		Todos: make([]TodoResponse, 0, len(todos)),
		Total: len(todos),
	}
	for _, todo := range todos {
		response.Todos = append(response.Todos, toTodoResponse(todo))
	}
	return response, nil
}

// toggleTodo handles the toggle-todo service request.
// A missing todo is reported with Found=false rather than an error.
func (m *Module) toggleTodo(ctx context.Context, req ToggleTodoRequest, _ *mono.Msg) (ToggleTodoResponse, error) {
	todo, err := m.store.Toggle(ctx, req.TodoID)
	if errors.Is(err, domain.ErrNotFound) {
		return ToggleTodoResponse{Found: false}, nil
	}
	if err != nil {
		m.logger.Error("Failed to toggle todo", "todoID", req.TodoID, "error", err)
		return ToggleTodoResponse{}, fmt.Errorf("failed to toggle todo: %w", err)
	}

	m.publishToggled(todo)
	resp := toTodoResponse(todo)
	return ToggleTodoResponse{Todo: &resp, Found: true}, nil
}

// health handles the todo-health service request.
func (m *Module) health(ctx context.Context, _ HealthRequest, _ *mono.Msg) (HealthResponse, error) {
	status := m.Health(ctx)
	return HealthResponse{
		Healthy: status.Healthy,
		Message: status.Message,
		Backend: m.cfg.Backend,
	}, nil
}

// Event publishing is best-effort; failures are logged but never fail the operation.
func (m *Module) publishCreated(todo domain.Todo) {
	if m.eventBus == nil {
		return
	}
	event := events.TodoCreatedEvent{
		TodoID:    todo.ID,
		Title:     todo.Title,
		CreatedAt: todo.CreatedAt,
	}
	if err := events.TodoCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TodoCreated event", "todoID", todo.ID, "error", err)
	}
}

func (m *Module) publishToggled(todo domain.Todo) {
	if m.eventBus == nil {
		return
	}
	event := events.TodoToggledEvent{
		TodoID:      todo.ID,
		Completed:   todo.Completed,
		CompletedAt: todo.CompletedAt,
		ToggledAt:   domain.Now(),
	}
	if err := events.TodoToggledV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TodoToggled event", "todoID", todo.ID, "error", err)
	}
}
