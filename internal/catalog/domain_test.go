// internal/catalog/domain_test.go
package catalog

import (
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewBookAcceptsValidFields(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		title := rapid.StringOfN(rapid.RuneFrom(nil, unicodeLetters...), MinTextLength, MaxTextLength, -1).Draw(t, "title")
		author := rapid.StringOfN(rapid.RuneFrom(nil, unicodeLetters...), MinTextLength, MaxTextLength, -1).Draw(t, "author")
		year := rapid.IntRange(MinYear, MaxYear).Draw(t, "year")

		book, err := NewBook(title, author, year)
		if err != nil {
			t.Fatalf("NewBook(%q, %q, %d): %v", title, author, year, err)
		}
		if book.Status != StatusAvailable {
			t.Fatalf("status = %q, want %q", book.Status, StatusAvailable)
		}
	})
}

func TestNewBookRejectsOutOfRangeYear(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		year := rapid.OneOf(
			rapid.IntRange(-10000, MinYear-1),
			rapid.IntRange(MaxYear+1, 10000),
		).Draw(t, "year")

		_, err := NewBook("Valid title", "Valid author", year)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("year %d: got %v, want validation error", year, err)
		}
	})
}

func TestNewBookRejectsOutOfRangeText(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		author string
		field  string
	}{
		{"short title", "Dune", "Frank Herbert", "title"},
		{"long title", strings.Repeat("x", MaxTextLength+1), "Frank Herbert", "title"},
		{"empty author", "Dune Messiah", "", "author"},
		{"long author", "Dune Messiah", strings.Repeat("y", MaxTextLength+1), "author"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBook(tt.title, tt.author, 1965)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNewBookCountsRunes(t *testing.T) {
	// Six characters, twelve bytes.
	_, err := NewBook("Жизнь!", "Толстой", 1900)
	assert.NoError(t, err)

	_, err = NewBook(strings.Repeat("ж", MaxTextLength), "Толстой", 2100)
	assert.NoError(t, err)
}

func TestStatusMembership(t *testing.T) {
	for _, s := range Statuses() {
		parsed, ok := ParseStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}

	for _, bad := range []string{"", "lost", "AVAILABLE", "Issued"} {
		_, ok := ParseStatus(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		parsed, ok := ParseField(string(f))
		assert.True(t, ok)
		assert.Equal(t, f, parsed)
	}

	_, ok := ParseField("isbn")
	assert.False(t, ok)
}

func TestBookRecordRoundTrip(t *testing.T) {
	book, err := NewBook("The Great Gatsby", "F. Scott Fitzgerald", 1925)
	require.NoError(t, err)

	restored, err := bookFromRecord(book.ID.String(), book.Record())
	require.NoError(t, err)
	assert.Equal(t, book, restored)
}

func TestBookFromRecordRejectsMalformedID(t *testing.T) {
	_, err := bookFromRecord("not-an-id", (&Book{}).Record())
	assert.Error(t, err)
}

var unicodeLetters = []*unicode.RangeTable{unicode.Letter, unicode.Digit, unicode.Space}
