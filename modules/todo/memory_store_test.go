package todo

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "github.com/example/todo-service/domain/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) domain.Store {
		return NewMemoryStore()
	})
}

func TestMemoryStore_ListInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"a", "b", "c", "d"} {
		created, err := store.Create(ctx, title)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(ids))
	for i, todo := range list {
		assert.Equal(t, ids[i], todo.ID)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "a")
	require.NoError(t, err)
	toggled, err := store.Toggle(ctx, created.ID)
	require.NoError(t, err)

	toggled.Title = "changed"
	toggled.Completed = false
	*toggled.CompletedAt = time.Time{}

	list, err := store.List(ctx)
	require.NoError(t, err)
	list[0].Title = "changed again"

	again, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, "a", again[0].Title)
	assert.True(t, again[0].Completed)
	require.NotNil(t, again[0].CompletedAt)
	assert.False(t, again[0].CompletedAt.IsZero())
}

func TestMemoryStore_UsesClock(t *testing.T) {
	store := NewMemoryStore()
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	completed := created.Add(time.Hour)

	store.now = func() time.Time { return created }
	todo, err := store.Create(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, todo.CreatedAt.Equal(created))

	store.now = func() time.Time { return completed }
	todo, err = store.Toggle(context.Background(), todo.ID)
	require.NoError(t, err)
	require.NotNil(t, todo.CompletedAt)
	assert.True(t, todo.CompletedAt.Equal(completed))
}

func TestMemoryStore_ConcurrentToggle(t *testing.T) {
	for _, k := range []int{1, 2, 99, 300} {
		store := NewMemoryStore()
		created, err := store.Create(context.Background(), "contended")
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < k; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Toggle(context.Background(), created.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		list, err := store.List(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, k%2 == 1, list[0].Completed, "k=%d", k)
		assert.Equal(t, list[0].Completed, list[0].CompletedAt != nil, "k=%d", k)
	}
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	store := NewMemoryStore()
	const n = 200

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(context.Background(), "t")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, n)

	seen := make(map[string]bool, n)
	for _, todo := range list {
		assert.False(t, seen[todo.ID])
		seen[todo.ID] = true
	}
}
