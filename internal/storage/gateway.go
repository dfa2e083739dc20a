// internal/storage/gateway.go
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"libracatalog/internal/logging"
)

// Gateway provides scoped access to the whole catalog.
//
// Session loads the catalog fresh, runs fn against it and writes the catalog
// back in full once fn returns, whether fn failed or not. There is no locking:
// two concurrent sessions race and the later writer wins.
type Gateway interface {
	Session(ctx context.Context, fn func(*Catalog) error) error
}

// backend is the load/persist pair a gateway plugs into runSession.
type backend interface {
	name() string
	load(ctx context.Context) (*Catalog, error)
	persist(ctx context.Context, c *Catalog) error
}

func runSession(ctx context.Context, tracer trace.Tracer, b backend, fn func(*Catalog) error) (err error) {
	ctx, span := tracer.Start(ctx, "storage.session",
		trace.WithAttributes(attribute.String("storage.backend", b.name())),
	)
	defer span.End()

	log := logging.FromContext(ctx)

	catalog, err := b.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Debug().Str("backend", b.name()).Int("records", catalog.Len()).Msg("catalog loaded")

	defer func() {
		if perr := b.persist(ctx, catalog); perr != nil {
			err = errors.Join(err, fmt.Errorf("persist catalog: %w", perr))
		} else {
			log.Debug().Str("backend", b.name()).Int("records", catalog.Len()).Msg("catalog persisted")
		}
		span.SetAttributes(attribute.Int("catalog.records", catalog.Len()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "session failed")
		}
	}()

	return fn(catalog)
}
