// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"libracatalog/internal/logging"
	"libracatalog/internal/storage"
)

// service implements the Service interface.
type service struct {
	storage storage.Gateway
}

// NewService creates a new catalog service instance.
func NewService(gw storage.Gateway) Service {
	return &service{storage: gw}
}

// AddBook stores a validated book under its id.
func (s *service) AddBook(ctx context.Context, book *Book) error {
	if book == nil {
		return fmt.Errorf("add book: nil book")
	}

	err := s.storage.Session(ctx, func(c *storage.Catalog) error {
		c.Set(book.ID.String(), book.Record())
		return nil
	})
	if err != nil {
		return fmt.Errorf("add book: %w", err)
	}

	logging.FromContext(ctx).Debug().Str("book_id", book.ID.String()).Msg("book added")
	return nil
}

// RemoveBook deletes a book from the catalog.
func (s *service) RemoveBook(ctx context.Context, id string) error {
	return s.storage.Session(ctx, func(c *storage.Catalog) error {
		if !c.Delete(id) {
			return &NotFoundError{ID: id}
		}
		logging.FromContext(ctx).Debug().Str("book_id", id).Msg("book removed")
		return nil
	})
}

// UpdateBookStatus overwrites the status of a book and nothing else.
func (s *service) UpdateBookStatus(ctx context.Context, id, status string) error {
	return s.storage.Session(ctx, func(c *storage.Catalog) error {
		rec, ok := c.Get(id)
		if !ok {
			return &NotFoundError{ID: id}
		}
		next, ok := ParseStatus(status)
		if !ok {
			return &InvalidStatusError{Status: status}
		}

		rec.Status = string(next)
		c.Set(id, rec)

		logging.FromContext(ctx).Debug().Str("book_id", id).Str("status", status).Msg("book status updated")
		return nil
	})
}

// ListBooks returns the catalog in insertion order.
func (s *service) ListBooks(ctx context.Context, limit int) ([]*Book, error) {
	return s.collect(ctx, limit, func(*Book) bool { return true })
}

// SearchBooks scans the whole catalog for books whose field contains value,
// ignoring case and surrounding whitespace.
func (s *service) SearchBooks(ctx context.Context, field, value string, limit int) ([]*Book, error) {
	f, ok := ParseField(field)
	if !ok {
		return nil, &InvalidFieldError{Field: field}
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(value))

	return s.collect(ctx, limit, func(b *Book) bool {
		return strings.Contains(fold.String(strings.TrimSpace(b.Value(f))), needle)
	})
}

func (s *service) collect(ctx context.Context, limit int, match func(*Book) bool) ([]*Book, error) {
	var books []*Book
	err := s.storage.Session(ctx, func(c *storage.Catalog) error {
		var convErr error
		c.Each(func(id string, rec storage.Record) bool {
			book, err := bookFromRecord(id, rec)
			if err != nil {
				convErr = err
				return false
			}
			if match(book) {
				books = append(books, book)
			}
			return true
		})
		return convErr
	})
	if err != nil {
		return nil, err
	}

	return Paginate(books, limit), nil
}
