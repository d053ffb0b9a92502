package activity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/todo-service/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Entry kinds recorded in the activity log.
const (
	KindCreated   = "todo_created"
	KindCompleted = "todo_completed"
	KindReopened  = "todo_reopened"
)

// Entry is one line of the activity log.
type Entry struct {
	TodoID     string    `json:"todo_id"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Module records todo activity as a driven adapter.
// It subscribes to todo events using the EventConsumerModule interface.
type Module struct {
	entries []Entry
	mu      sync.RWMutex
	logger  types.Logger
}

var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates an activity module with an empty log.
func NewModule(logger types.Logger) *Module {
	return &Module{
		entries: make([]Entry, 0),
		logger:  logger.WithModule("activity"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "activity"
}

// RegisterEventConsumers subscribes to the todo events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoCreatedV1, m.handleTodoCreated, m); err != nil {
		return fmt.Errorf("failed to register TodoCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoToggledV1, m.handleTodoToggled, m); err != nil {
		return fmt.Errorf("failed to register TodoToggled consumer: %w", err)
	}

	m.logger.Debug("Registered event consumers", "events", []string{"TodoCreated", "TodoToggled"})
	return nil
}

func (m *Module) handleTodoCreated(_ context.Context, event events.TodoCreatedEvent, _ *mono.Msg) error {
	m.logger.Info("Todo created", "todo_id", event.TodoID)
	m.record(Entry{
		TodoID:     event.TodoID,
		Kind:       KindCreated,
		Message:    fmt.Sprintf("Todo '%s' created", event.Title),
		OccurredAt: event.CreatedAt,
	})
	return nil
}

func (m *Module) handleTodoToggled(_ context.Context, event events.TodoToggledEvent, _ *mono.Msg) error {
	kind, message := KindReopened, fmt.Sprintf("Todo %s marked pending", event.TodoID)
	if event.Completed {
		kind, message = KindCompleted, fmt.Sprintf("Todo %s completed", event.TodoID)
	}

	m.logger.Info("Todo toggled", "todo_id", event.TodoID, "completed", event.Completed)
	m.record(Entry{
		TodoID:     event.TodoID,
		Kind:       kind,
		Message:    message,
		OccurredAt: event.ToggledAt,
	})
	return nil
}

func (m *Module) record(entry Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.RecordedAt = time.Now().UTC()
	m.entries = append(m.entries, entry)
}

// Entries returns a copy of the activity log in arrival order.
func (m *Module) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, len(m.entries))
	copy(result, m.entries)
	return result
}

// Start logs that the module is listening; consumers are registered by the framework.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Module started - listening for todo events")
	return nil
}

// Stop logs how many entries were recorded.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Module stopped", "entries", len(m.Entries()))
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"entries": len(m.Entries()),
		},
	}
}
