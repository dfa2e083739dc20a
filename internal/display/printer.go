// internal/display/printer.go

// Package display renders catalog results for the terminal.
package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"libracatalog/internal/catalog"
)

// EmptyMessage is printed instead of a table when there is nothing to show.
const EmptyMessage = "No data to display."

// Headers are the table column names, in order.
var Headers = []string{"#", "id", "title", "author", "year", "status"}

// Printer renders books as a numbered table followed by a count.
type Printer struct{}

var _ catalog.Printer = (*Printer)(nil)

// NewPrinter creates a table printer.
func NewPrinter() *Printer {
	return &Printer{}
}

// PrintBooks implements catalog.Printer.
func (p *Printer) PrintBooks(w io.Writer, books []*catalog.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	table := tablewriter.NewTable(w)

	headers := make([]any, len(Headers))
	for i, h := range Headers {
		headers[i] = h
	}
	table.Header(headers...)

	for i, b := range books {
		if err := table.Append(Row(i+1, b)...); err != nil {
			return fmt.Errorf("append row %d: %w", i+1, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "Found %d items\n", len(books))
	return err
}

// Row returns the table cells for the n-th book.
func Row(n int, b *catalog.Book) []any {
	return []any{
		strconv.Itoa(n),
		b.ID.String(),
		b.Title,
		b.Author,
		strconv.Itoa(b.Year),
		string(b.Status),
	}
}
