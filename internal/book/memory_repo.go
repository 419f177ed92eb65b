package book

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepository keeps the collection in process memory, in insertion order.
// Every method holds mu for its whole read-modify-write.
type MemoryRepository struct {
	mu    sync.RWMutex
	books []Book
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) List(_ context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.books), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return Book{}, ErrNotFound
	}
	return r.books[i], nil
}

func (r *MemoryRepository) Insert(_ context.Context, b Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books = append(r.books, b)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, apply func(*Book)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	current := r.books[i]
	updated := current
	apply(&updated)
	updated.ID = current.ID
	updated.InsertedAt = current.InsertedAt
	r.books[i] = updated
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.books = slices.Delete(r.books, i, i+1)
	return nil
}

// indexOf must be called with mu held.
func (r *MemoryRepository) indexOf(id string) int {
	return slices.IndexFunc(r.books, func(b Book) bool { return b.ID == id })
}
