// internal/storage/file.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// FileGateway keeps the catalog in a single file that is read and rewritten
// wholesale on every session.
type FileGateway struct {
	path   string
	codec  codec
	tracer trace.Tracer
}

var _ Gateway = (*FileGateway)(nil)

// NewFileGateway creates a gateway backed by the file at path. The encoding
// follows the extension: .yaml and .yml use YAML, anything else JSON.
func NewFileGateway(path string) *FileGateway {
	return &FileGateway{
		path:   path,
		codec:  codecFor(path),
		tracer: otel.Tracer("libracatalog/storage"),
	}
}

// Path returns the backing file path.
func (g *FileGateway) Path() string {
	return g.path
}

// Session implements Gateway.
func (g *FileGateway) Session(ctx context.Context, fn func(*Catalog) error) error {
	return runSession(ctx, g.tracer, g, fn)
}

func (g *FileGateway) name() string {
	return "file"
}

func (g *FileGateway) load(ctx context.Context) (*Catalog, error) {
	data, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		empty := NewCatalog()
		if err := g.persist(ctx, empty); err != nil {
			return nil, fmt.Errorf("create %s: %w", g.path, err)
		}
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", g.path, err)
	}
	return g.codec.decode(data)
}

func (g *FileGateway) persist(_ context.Context, c *Catalog) error {
	data, err := g.codec.encode(c)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(g.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(g.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", g.path, err)
	}
	return nil
}
