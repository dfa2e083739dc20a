// internal/storage/open.go
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Storage drivers accepted by Open.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and configures a storage backend.
type Options struct {
	Driver string
	// Path is the catalog file for DriverFile.
	Path string
	// DSN is the data source name for the SQL drivers.
	DSN string
}

// Open returns the gateway described by opts and a function releasing any
// resources it holds.
func Open(ctx context.Context, opts Options) (Gateway, func() error, error) {
	switch opts.Driver {
	case "", DriverFile:
		if opts.Path == "" {
			return nil, nil, fmt.Errorf("file storage requires a path")
		}
		return NewFileGateway(opts.Path), func() error { return nil }, nil
	case DriverSQLite, DriverPostgres:
		db, err := sql.Open(opts.Driver, opts.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", opts.Driver, err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("connect to %s: %w", opts.Driver, err)
		}
		g := NewSQLGateway(db, opts.Driver)
		if err := g.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return g, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
