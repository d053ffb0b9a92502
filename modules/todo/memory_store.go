package todo

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/example/todo-service/domain/todo"
)

// MemoryStore keeps todos in process memory, in insertion order.
// A single mutex is held for the whole of every operation.
type MemoryStore struct {
	todos []domain.Todo
	mu    sync.Mutex
	now   func() time.Time
}

var _ domain.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory todo store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		todos: make([]domain.Todo, 0),
		now:   domain.Now,
	}
}

// Create appends a new pending todo.
func (s *MemoryStore) Create(_ context.Context, title string) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo := domain.New(title, s.now())
	s.todos = append(s.todos, todo)
	return todo.Clone(), nil
}

// List returns a copy of every todo in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		result = append(result, todo.Clone())
	}
	return result, nil
}

// Toggle flips the completion state of the todo with the given identifier.
func (s *MemoryStore) Toggle(_ context.Context, id string) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i] = s.todos[i].Toggled(s.now())
			return s.todos[i].Clone(), nil
		}
	}
	return domain.Todo{}, fmt.Errorf("toggle todo %s: %w", id, domain.ErrNotFound)
}
