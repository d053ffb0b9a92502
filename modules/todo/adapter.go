package todo

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/todo-service/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Service names registered by the todo module.
const (
	ServiceCreateTodo = "create-todo"
	ServiceListTodos  = "list-todos"
	ServiceToggleTodo = "toggle-todo"
	ServiceTodoHealth = "todo-health"
)

// todoAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TodoPort interface.
type todoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a new adapter for todo services.
// container is the ServiceContainer from the todo module received via SetDependencyServiceContainer.
func NewTodoAdapter(container mono.ServiceContainer) TodoPort {
	if container == nil {
		panic("todo adapter requires non-nil ServiceContainer")
	}
	return &todoAdapter{container: container}
}

// CreateTodo creates a new todo via the create-todo service.
func (a *todoAdapter) CreateTodo(ctx context.Context, title string) (*TodoResponse, error) {
	req := CreateTodoRequest{Title: title}
	var resp TodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreateTodo,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("create-todo service call failed: %w", err)
	}
	return &resp, nil
}

// ListTodos lists all todos via the list-todos service.
func (a *todoAdapter) ListTodos(ctx context.Context) (*ListTodosResponse, error) {
	req := ListTodosRequest{}
	var resp ListTodosResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListTodos,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-todos service call failed: %w", err)
	}
	return &resp, nil
}

// ToggleTodo flips a todo's completion state via the toggle-todo service.
// It returns domain.ErrNotFound when the todo does not exist.
func (a *todoAdapter) ToggleTodo(ctx context.Context, todoID string) (*TodoResponse, error) {
	req := ToggleTodoRequest{TodoID: todoID}
	var resp ToggleTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceToggleTodo,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("toggle-todo service call failed: %w", err)
	}
	if !resp.Found || resp.Todo == nil {
		return nil, fmt.Errorf("toggle todo %s: %w", todoID, domain.ErrNotFound)
	}
	return resp.Todo, nil
}

// Health reports the todo module's store health via the todo-health service.
func (a *todoAdapter) Health(ctx context.Context) (*HealthResponse, error) {
	req := HealthRequest{}
	var resp HealthResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceTodoHealth,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("todo-health service call failed: %w", err)
	}
	return &resp, nil
}
