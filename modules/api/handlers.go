package api

import (
	"context"
	"errors"

	domain "github.com/example/todo-service/domain/todo"
	"github.com/example/todo-service/modules/todo"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	todos := app.Group("/todos")
	todos.Post("/", m.createTodo)
	todos.Get("/", m.listTodos)
	todos.Post("/:id/toggle", m.toggleTodo)
}

// healthHandler handles GET /health.
// It reports unhealthy when the todo module cannot reach its store.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	ctx, cancel := m.requestContext(c)
	defer cancel()

	details := map[string]any{
		"module": "api",
		"addr":   m.cfg.HTTPAddr,
	}

	resp, err := m.todoPort.Health(ctx)
	if err != nil {
		m.logger.Error("Todo health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:  "unhealthy",
			Details: details,
		})
	}

	details["store_backend"] = resp.Backend
	details["store"] = resp.Message
	if !resp.Healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:  "unhealthy",
			Details: details,
		})
	}

	return c.JSON(HealthResponse{
		Status:  "healthy",
		Details: details,
	})
}

// createTodo handles POST /todos.
func (m *APIModule) createTodo(c *fiber.Ctx) error {
	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if req.Title == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Title is required",
		})
	}

	ctx, cancel := m.requestContext(c)
	defer cancel()

	resp, err := m.todoPort.CreateTodo(ctx, *req.Title)
	if err != nil {
		return m.errorResponse(c, "create", err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTodoResponse(*resp))
}

// listTodos handles GET /todos.
func (m *APIModule) listTodos(c *fiber.Ctx) error {
	ctx, cancel := m.requestContext(c)
	defer cancel()

	resp, err := m.todoPort.ListTodos(ctx)
	if err != nil {
		return m.errorResponse(c, "list", err)
	}

	todos := make([]TodoResponse, 0, len(resp.Todos))
	for _, t := range resp.Todos {
		todos = append(todos, toTodoResponse(t))
	}
	return c.JSON(todos)
}

// toggleTodo handles POST /todos/:id/toggle.
func (m *APIModule) toggleTodo(c *fiber.Ctx) error {
	ctx, cancel := m.requestContext(c)
	defer cancel()

	resp, err := m.todoPort.ToggleTodo(ctx, c.Params("id"))
	if err != nil {
		return m.errorResponse(c, "toggle", err)
	}

	return c.JSON(toTodoResponse(*resp))
}

func (m *APIModule) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), m.cfg.RequestTimeout)
}

// errorResponse maps a todo port error to a status code without exposing its text.
func (m *APIModule) errorResponse(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Todo not found",
		})
	}

	m.logger.Error("Todo operation failed", "op", op, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   op + "_failed",
		Message: "Internal Server Error",
	})
}

func toTodoResponse(t todo.TodoResponse) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}
