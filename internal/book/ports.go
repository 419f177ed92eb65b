package book

import (
	"context"
	"errors"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// ErrNotFound is returned by a Repository when no book has the requested ID.
var ErrNotFound = errors.New("book not found")

// Repository defines the contract for the book collection.
//
// Implementations keep insertion order and return copies, never references
// into their own storage.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id string) (Book, error)
	Insert(ctx context.Context, b Book) error
	// Update runs apply on the stored book in place. ID and InsertedAt
	// survive whatever apply does.
	Update(ctx context.Context, id string, apply func(*Book)) error
	Delete(ctx context.Context, id string) error
}
