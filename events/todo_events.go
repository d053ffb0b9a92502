package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TodoCreatedEvent is emitted when a new todo is created.
type TodoCreatedEvent struct {
	TodoID    string    `json:"todo_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoCreatedV1 is the typed event definition for todo creation.
// Subject: events.todo.v1.todo-created
var TodoCreatedV1 = helper.EventDefinition[TodoCreatedEvent](
	"todo", "TodoCreated", "v1",
)

// TodoToggledEvent is emitted when a todo's completion state is flipped.
type TodoToggledEvent struct {
	TodoID      string     `json:"todo_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ToggledAt   time.Time  `json:"toggled_at"`
}

// TodoToggledV1 is the typed event definition for todo toggles.
// Subject: events.todo.v1.todo-toggled
var TodoToggledV1 = helper.EventDefinition[TodoToggledEvent](
	"todo", "TodoToggled", "v1",
)
