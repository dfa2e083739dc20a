// internal/storage/sql.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// SQLGateway keeps the catalog in a books table. Like the file gateway it
// loads every row at the start of a session and rewrites the table in full at
// the end, inside a single transaction.
type SQLGateway struct {
	db     *sql.DB
	driver string
	tracer trace.Tracer
}

var _ Gateway = (*SQLGateway)(nil)

// NewSQLGateway wraps an open database. driver selects the placeholder style
// and must be DriverSQLite or DriverPostgres.
func NewSQLGateway(db *sql.DB, driver string) *SQLGateway {
	return &SQLGateway{
		db:     db,
		driver: driver,
		tracer: otel.Tracer("libracatalog/storage"),
	}
}

// Migrate creates the books table when it does not exist yet.
func (g *SQLGateway) Migrate(ctx context.Context) error {
	_, err := g.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS books (
			position INTEGER NOT NULL,
			id       TEXT PRIMARY KEY,
			title    TEXT NOT NULL,
			author   TEXT NOT NULL,
			year     INTEGER NOT NULL,
			status   TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}

// Session implements Gateway.
func (g *SQLGateway) Session(ctx context.Context, fn func(*Catalog) error) error {
	return runSession(ctx, g.tracer, g, fn)
}

func (g *SQLGateway) name() string {
	return g.driver
}

func (g *SQLGateway) load(ctx context.Context) (*Catalog, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, title, author, year, status
		FROM books
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	c := NewCatalog()
	for rows.Next() {
		var id string
		var rec Record
		if err := rows.Scan(&id, &rec.Title, &rec.Author, &rec.Year, &rec.Status); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		c.Set(id, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return c, nil
}

func (g *SQLGateway) persist(ctx context.Context, c *Catalog) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("clear books: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO books (position, id, title, author, year, status) VALUES (%s)`,
		g.placeholders(6),
	))
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	position := 0
	c.Each(func(id string, rec Record) bool {
		_, err = stmt.ExecContext(ctx, position, id, rec.Title, rec.Author, rec.Year, rec.Status)
		position++
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("insert book %d: %w", position-1, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (g *SQLGateway) placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		if g.driver == DriverPostgres {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}
	return strings.Join(marks, ", ")
}
