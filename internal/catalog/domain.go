// internal/catalog/domain.go
package catalog

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"

	"libracatalog/internal/storage"
)

// Bounds enforced when a book is created.
const (
	MinTextLength = 6
	MaxTextLength = 36
	MinYear       = 1900
	MaxYear       = 2100
)

// Status is the circulation state of a book.
type Status string

const (
	StatusAvailable Status = "available"
	StatusIssued    Status = "issued"
)

// Statuses lists every known status.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusIssued}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusIssued:
		return true
	}
	return false
}

// ParseStatus returns the status named by s, if any.
func ParseStatus(s string) (Status, bool) {
	status := Status(s)
	return status, status.Valid()
}

// Field is a searchable book attribute.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldYear   Field = "year"
)

// Fields lists every searchable field.
func Fields() []Field {
	return []Field{FieldTitle, FieldAuthor, FieldYear}
}

// ParseField returns the field named by s, if any.
func ParseField(s string) (Field, bool) {
	switch f := Field(s); f {
	case FieldTitle, FieldAuthor, FieldYear:
		return f, true
	}
	return "", false
}

// Book represents a single catalog entry.
type Book struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	Year   int       `json:"year"`
	Status Status    `json:"status"`
}

// NewBook validates every field and returns an available book with a fresh id.
func NewBook(title, author string, year int) (*Book, error) {
	if err := validateText(FieldTitle, title); err != nil {
		return nil, err
	}
	if err := validateText(FieldAuthor, author); err != nil {
		return nil, err
	}
	if year < MinYear || year > MaxYear {
		return nil, NewValidationError(string(FieldYear), year,
			fmt.Sprintf("must be between %d and %d", MinYear, MaxYear))
	}

	return &Book{
		ID:     uuid.New(),
		Title:  title,
		Author: author,
		Year:   year,
		Status: StatusAvailable,
	}, nil
}

func validateText(field Field, value string) error {
	n := utf8.RuneCountInString(value)
	if n < MinTextLength || n > MaxTextLength {
		return NewValidationError(string(field), value,
			fmt.Sprintf("must be between %d and %d characters", MinTextLength, MaxTextLength))
	}
	return nil
}

// Value returns the book's value for f as a string.
func (b *Book) Value(f Field) string {
	switch f {
	case FieldTitle:
		return b.Title
	case FieldAuthor:
		return b.Author
	case FieldYear:
		return strconv.Itoa(b.Year)
	}
	return ""
}

// Record converts the book to its persisted form.
func (b *Book) Record() storage.Record {
	return storage.Record{
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
		Status: string(b.Status),
	}
}

// bookFromRecord rebuilds a stored book. Stored fields are trusted; only the
// key has to be a well-formed id.
func bookFromRecord(id string, rec storage.Record) (*Book, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("stored book has malformed id %q: %w", id, err)
	}
	return &Book{
		ID:     parsed,
		Title:  rec.Title,
		Author: rec.Author,
		Year:   rec.Year,
		Status: Status(rec.Status),
	}, nil
}
