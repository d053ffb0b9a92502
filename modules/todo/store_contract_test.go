package todo

import (
	"context"
	"testing"

	domain "github.com/example/todo-service/domain/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every domain.Store must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) domain.Store) {
	t.Run("create returns pending todo", func(t *testing.T) {
		store := newStore(t)

		created, err := store.Create(context.Background(), "buy milk")
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "buy milk", created.Title)
		assert.False(t, created.Completed)
		assert.Nil(t, created.CompletedAt)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("create accepts empty title", func(t *testing.T) {
		store := newStore(t)

		created, err := store.Create(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "", created.Title)
	})

	t.Run("identifiers are unique", func(t *testing.T) {
		store := newStore(t)
		seen := make(map[string]bool)

		for i := 0; i < 50; i++ {
			created, err := store.Create(context.Background(), "t")
			require.NoError(t, err)
			require.False(t, seen[created.ID], "duplicate identifier %s", created.ID)
			seen[created.ID] = true
		}
	})

	t.Run("read your write", func(t *testing.T) {
		store := newStore(t)

		created, err := store.Create(context.Background(), "buy milk")
		require.NoError(t, err)

		list, err := store.List(context.Background())
		require.NoError(t, err)

		matches := 0
		for _, todo := range list {
			if todo.ID == created.ID {
				matches++
				assert.Equal(t, "buy milk", todo.Title)
				assert.False(t, todo.Completed)
				assert.True(t, created.CreatedAt.Equal(todo.CreatedAt))
			}
		}
		assert.Equal(t, 1, matches)
	})

	t.Run("toggle twice restores state", func(t *testing.T) {
		store := newStore(t)

		created, err := store.Create(context.Background(), "a")
		require.NoError(t, err)

		done, err := store.Toggle(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, done.Completed)
		require.NotNil(t, done.CompletedAt)
		assert.False(t, done.CompletedAt.Before(done.CreatedAt))

		undone, err := store.Toggle(context.Background(), created.ID)
		require.NoError(t, err)
		assert.False(t, undone.Completed)
		assert.Nil(t, undone.CompletedAt)
		assert.Equal(t, created.ID, undone.ID)
		assert.Equal(t, created.Title, undone.Title)
	})

	t.Run("toggle unknown identifier", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Create(context.Background(), "a")
		require.NoError(t, err)

		before, err := store.List(context.Background())
		require.NoError(t, err)

		for _, id := range []string{"nonexistent", "", "not-a-uuid!", "00000000-0000-0000-0000-000000000000"} {
			_, err := store.Toggle(context.Background(), id)
			assert.ErrorIs(t, err, domain.ErrNotFound, "id %q", id)
		}

		after, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("completed iff completedAt present", func(t *testing.T) {
		store := newStore(t)

		a, err := store.Create(context.Background(), "a")
		require.NoError(t, err)
		_, err = store.Create(context.Background(), "b")
		require.NoError(t, err)
		_, err = store.Toggle(context.Background(), a.ID)
		require.NoError(t, err)

		list, err := store.List(context.Background())
		require.NoError(t, err)
		for _, todo := range list {
			assert.Equal(t, todo.Completed, todo.CompletedAt != nil, "todo %s", todo.ID)
		}
	})

	t.Run("end to end scenario", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		u1, err := store.Create(ctx, "a")
		require.NoError(t, err)
		u2, err := store.Create(ctx, "b")
		require.NoError(t, err)

		list, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		byID := map[string]domain.Todo{list[0].ID: list[0], list[1].ID: list[1]}
		assert.Equal(t, "a", byID[u1.ID].Title)
		assert.Equal(t, "b", byID[u2.ID].Title)
		assert.False(t, byID[u1.ID].Completed)
		assert.False(t, byID[u2.ID].Completed)

		toggled, err := store.Toggle(ctx, u1.ID)
		require.NoError(t, err)
		assert.Equal(t, u1.ID, toggled.ID)
		assert.Equal(t, "a", toggled.Title)
		assert.True(t, toggled.Completed)
		assert.NotNil(t, toggled.CompletedAt)

		toggled, err = store.Toggle(ctx, u1.ID)
		require.NoError(t, err)
		assert.False(t, toggled.Completed)
		assert.Nil(t, toggled.CompletedAt)

		_, err = store.Toggle(ctx, "nonexistent")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
