package book

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookshelf/internal/apperror"
	"bookshelf/internal/id"
	"bookshelf/internal/validation"
)

// Service provides the book collection operations.
type Service struct {
	repo  Repository
	newID func() (string, error)
	now   func() time.Time
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newID: id.Generate,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create validates p, appends a new book and returns its ID together with a
// snapshot of the whole collection.
func (s *Service) Create(ctx context.Context, p Payload) (string, []Book, error) {
	if err := validation.Validate(p); err != nil {
		return "", nil, err
	}

	bookID, err := s.newID()
	if err != nil {
		return "", nil, apperror.Wrap(err, apperror.CodeInternal, "failed to add book")
	}

	if err := s.repo.Insert(ctx, newBook(bookID, p, s.now())); err != nil {
		return "", nil, apperror.Wrap(err, apperror.CodeInternal, "failed to add book")
	}

	// The book must be readable right after Insert.
	if _, err := s.repo.GetByID(ctx, bookID); err != nil {
		return "", nil, apperror.Wrap(err, apperror.CodeInternal, "failed to add book")
	}

	books, err := s.repo.List(ctx)
	if err != nil {
		return "", nil, apperror.Wrap(err, apperror.CodeInternal, "failed to list books")
	}
	return bookID, books, nil
}

// List returns the projections of the books selected by q, in insertion order.
// Name wins over Reading, and Reading over Finished; the others are ignored.
func (s *Service) List(ctx context.Context, q Query) ([]Projection, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to list books")
	}

	var keep func(Book) bool
	switch {
	case q.Name != "":
		needle := strings.ToLower(q.Name)
		keep = func(b Book) bool { return strings.Contains(strings.ToLower(b.Name), needle) }
	case q.Reading.IsSet():
		keep = func(b Book) bool { return q.Reading.Matches(b.Reading) }
	case q.Finished.IsSet():
		keep = func(b Book) bool { return q.Finished.Matches(b.Finished) }
	default:
		keep = func(Book) bool { return true }
	}

	out := make([]Projection, 0, len(books))
	for _, b := range books {
		if keep(b) {
			out = append(out, b.project())
		}
	}
	return out, nil
}

// Get returns the full record of one book.
func (s *Service) Get(ctx context.Context, bookID string) (Book, error) {
	b, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Book{}, apperror.NotFound("book not found")
		}
		return Book{}, apperror.Wrap(err, apperror.CodeInternal, "failed to get book")
	}
	return b, nil
}

// Update validates p and then replaces the caller-owned fields of the book.
// Validation failures are reported before the book is looked up.
func (s *Service) Update(ctx context.Context, bookID string, p Payload) error {
	if err := validation.Validate(p); err != nil {
		return err
	}

	now := s.now()
	err := s.repo.Update(ctx, bookID, func(b *Book) { b.apply(p, now) })
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NotFound("id not found")
		}
		return apperror.Wrap(err, apperror.CodeInternal, "failed to update book")
	}
	return nil
}

// Delete removes one book, keeping the order of the rest.
func (s *Service) Delete(ctx context.Context, bookID string) error {
	if err := s.repo.Delete(ctx, bookID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NotFound("id not found")
		}
		return apperror.Wrap(err, apperror.CodeInternal, "failed to delete book")
	}
	return nil
}
