package todo

import (
	"time"

	"github.com/google/uuid"
)

// Todo is the core domain entity representing a todo item.
type Todo struct {
	ID          string     `json:"id"`
	StorageID   string     `json:"-"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// New returns a pending todo with a freshly generated identifier.
func New(title string, now time.Time) Todo {
	return Todo{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
	}
}

// Toggled returns the todo with its completion state flipped.
// CompletedAt is set to now when the todo becomes completed and cleared otherwise.
func (t Todo) Toggled(now time.Time) Todo {
	t.Completed = !t.Completed
	if t.Completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return t
}

// Clone returns a copy that shares no memory with t.
func (t Todo) Clone() Todo {
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		t.CompletedAt = &completedAt
	}
	return t
}

// Now returns the current time in the precision todos are stored with.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
