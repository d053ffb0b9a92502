package todo

import "context"

// Store is the persistence contract shared by every todo backend.
//
// Implementations must return copies of their canonical state and must apply
// Toggle atomically per identifier: concurrent toggles of the same todo are
// serialized so that each accepted call contributes exactly one flip.
type Store interface {
	// Create records a new pending todo and returns it with its identifier.
	Create(ctx context.Context, title string) (Todo, error)

	// List returns every stored todo in storage order.
	List(ctx context.Context) ([]Todo, error)

	// Toggle flips the completion state of the todo with the given identifier.
	// It returns ErrNotFound when no such todo exists.
	Toggle(ctx context.Context, id string) (Todo, error)
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
