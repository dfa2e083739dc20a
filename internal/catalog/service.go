// internal/catalog/service.go
package catalog

import (
	"context"
)

// Service defines the interface for the catalog service.
//
// Every call opens exactly one storage session. Limits follow Paginate.
type Service interface {
	AddBook(ctx context.Context, book *Book) error
	RemoveBook(ctx context.Context, id string) error
	UpdateBookStatus(ctx context.Context, id, status string) error
	ListBooks(ctx context.Context, limit int) ([]*Book, error)
	SearchBooks(ctx context.Context, field, value string, limit int) ([]*Book, error)
}
