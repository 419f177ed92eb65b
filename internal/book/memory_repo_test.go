package book

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_InsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Insert(ctx, Book{ID: id, Name: id}))
	}

	books, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "a", books[0].ID)
	assert.Equal(t, "b", books[1].ID)
	assert.Equal(t, "c", books[2].ID)
}

func TestMemoryRepository_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Insert(ctx, Book{ID: "a", Name: "Original"}))

	books, err := repo.List(ctx)
	require.NoError(t, err)
	books[0].Name = "Mutated"

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Name)
}

func TestMemoryRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Insert(ctx, Book{ID: "a", Name: "A"}))

	t.Run("found", func(t *testing.T) {
		b, err := repo.GetByID(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "A", b.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryRepository_UpdateProtectsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	inserted := Timestamp{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Insert(ctx, Book{ID: "a", Name: "A", InsertedAt: inserted}))
	require.NoError(t, repo.Insert(ctx, Book{ID: "b", Name: "B"}))

	err := repo.Update(ctx, "a", func(b *Book) {
		b.ID = "hijacked"
		b.InsertedAt = Timestamp{}
		b.Name = "A2"
	})
	require.NoError(t, err)

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", books[0].ID)
	assert.Equal(t, inserted, books[0].InsertedAt)
	assert.Equal(t, "A2", books[0].Name)
	assert.Equal(t, "b", books[1].ID)

	assert.ErrorIs(t, repo.Update(ctx, "missing", func(*Book) {}), ErrNotFound)
}

func TestMemoryRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Insert(ctx, Book{ID: id}))
	}

	require.NoError(t, repo.Delete(ctx, "b"))
	assert.ErrorIs(t, repo.Delete(ctx, "b"), ErrNotFound)

	books, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "a", books[0].ID)
	assert.Equal(t, "c", books[1].ID)
}

func TestMemoryRepository_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Insert(ctx, Book{ID: "counter"}))

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Insert(ctx, Book{ID: fmt.Sprintf("book-%d", i)})
			_ = repo.Update(ctx, "counter", func(b *Book) { b.ReadPage++ })
			_, _ = repo.List(ctx)
		}(i)
	}
	wg.Wait()

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, workers+1)

	counter, err := repo.GetByID(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, workers, counter.ReadPage)
}
