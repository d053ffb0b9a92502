package todo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/todo-service/config"
	domain "github.com/example/todo-service/domain/todo"
	"github.com/example/todo-service/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"go.mongodb.org/mongo-driver/mongo"
)

// Module provides todo services (core domain) on top of the configured store.
type Module struct {
	cfg      config.StoreConfig
	store    domain.Store
	client   *mongo.Client
	eventBus mono.EventBus
	logger   types.Logger
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a todo module. The store is opened on Start.
func NewModule(cfg config.StoreConfig, logger types.Logger) *Module {
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "todo"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TodoCreatedV1.ToBase(),
		events.TodoToggledV1.ToBase(),
	}
}

// RegisterServices registers the request-reply services of the module.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreateTodo, json.Unmarshal, json.Marshal, m.createTodo,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreateTodo, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListTodos, json.Unmarshal, json.Marshal, m.listTodos,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListTodos, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceToggleTodo, json.Unmarshal, json.Marshal, m.toggleTodo,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceToggleTodo, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceTodoHealth, json.Unmarshal, json.Marshal, m.health,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceTodoHealth, err)
	}

	m.logger.Info("Registered services", "services", []string{ServiceCreateTodo, ServiceListTodos, ServiceToggleTodo, ServiceTodoHealth})
	return nil
}

// Start opens the configured store. A MongoDB connection failure aborts startup.
func (m *Module) Start(ctx context.Context) error {
	if m.store != nil {
		return nil
	}

	switch m.cfg.Backend {
	case config.BackendMemory:
		m.store = NewMemoryStore()
	case config.BackendMongo:
		store, err := m.openMongo(ctx)
		if err != nil {
			return err
		}
		m.store = store
	default:
		return fmt.Errorf("unknown todo store backend %q", m.cfg.Backend)
	}

	if m.eventBus == nil {
		m.logger.Warn("EventBus not set, events will not be published")
	}
	m.logger.Info("Todo module started", "backend", m.cfg.Backend)
	return nil
}

func (m *Module) openMongo(ctx context.Context) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
	defer cancel()

	client, err := ConnectMongo(connectCtx, m.cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	store := NewMongoStore(client.Database(m.cfg.Database).Collection(m.cfg.Collection))
	if err := store.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	m.client = client
	m.logger.Info("Connected to MongoDB", "database", m.cfg.Database, "collection", m.cfg.Collection)
	return store, nil
}

// Stop releases the store's resources.
func (m *Module) Stop(ctx context.Context) error {
	if m.client != nil {
		if err := m.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to disconnect from mongodb: %w", err)
		}
		m.client = nil
	}
	m.logger.Info("Todo module stopped")
	return nil
}

// Health reports whether the store is usable.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}

	details := map[string]any{"backend": m.cfg.Backend}
	if pinger, ok := m.store.(domain.Pinger); ok {
		if err := pinger.Ping(ctx); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: "store unreachable",
				Details: details,
			}
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}
