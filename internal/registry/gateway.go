package registry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/spaceplace/internal/log"
	"github.com/zjrosen/spaceplace/internal/tracing"
)

// ErrNoData is returned by Gateway.Load when the bound target does not exist.
var ErrNoData = errors.New("no data found")

// Gateway persists one registry's collection to a single bound target.
//
// Save overwrites the target with the full collection. Load returns the full
// collection, or ErrNoData when the target is missing. Implementations must
// round-trip the concrete kind and every field of each item.
type Gateway[T any] interface {
	Save(ctx context.Context, items []T) error
	Load(ctx context.Context) ([]T, error)
	// Target describes where the collection is stored, typically a file path.
	Target() string
}

// SequencedGateway is a Gateway that also stores the next unused body id
// next to the collection, so a later process never reissues the id of a
// deleted body. A stored nextID of 0 means none was recorded.
type SequencedGateway[T any] interface {
	Gateway[T]
	SaveWithNextID(ctx context.Context, items []T, nextID int) error
	LoadWithNextID(ctx context.Context) (items []T, nextID int, err error)
}

// LoadResult reports the outcome of a registry load.
type LoadResult int

const (
	// LoadOK means the collection was replaced with the stored contents.
	LoadOK LoadResult = iota
	// LoadNoData means the target did not exist and the collection is empty.
	LoadNoData
	// LoadFailed means the gateway failed and the prior collection was kept.
	LoadFailed
)

func (r LoadResult) String() string {
	switch r {
	case LoadOK:
		return "loaded"
	case LoadNoData:
		return "no data"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Option configures a registry.
type Option func(*options)

type options struct {
	tracer trace.Tracer
}

// WithTracer sets the tracer used for persistence spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{tracer: noop.NewTracerProvider().Tracer("noop")}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// persister wraps a gateway with tracing and logging so that no gateway
// failure escapes the registry.
type persister[T any] struct {
	name    string
	gateway Gateway[T]
	tracer  trace.Tracer
}

func (p persister[T]) target() string {
	if p.gateway == nil {
		return ""
	}
	return p.gateway.Target()
}

// save writes items. A positive nextID is stored alongside them when the
// gateway is a SequencedGateway.
func (p persister[T]) save(ctx context.Context, items []T, nextID int) bool {
	ctx, span := p.tracer.Start(ctx, tracing.SpanPrefixRegistry+p.name+".save")
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrRegistryName, p.name),
		attribute.String(tracing.AttrRegistryTarget, p.target()),
		attribute.Int(tracing.AttrRegistryCount, len(items)),
	)

	if p.gateway == nil {
		log.Error(log.CatRegistry, "Save skipped, no gateway bound", "registry", p.name)
		span.SetStatus(codes.Error, "no gateway bound")
		return false
	}
	var err error
	if sg, ok := p.gateway.(SequencedGateway[T]); ok && nextID > 0 {
		span.SetAttributes(attribute.Int(tracing.AttrRegistryNextID, nextID))
		err = sg.SaveWithNextID(ctx, items, nextID)
	} else {
		err = p.gateway.Save(ctx, items)
	}
	if err != nil {
		log.ErrorErr(log.CatRegistry, "Save failed", err, "registry", p.name, "target", p.target())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false
	}

	log.Debug(log.CatRegistry, "Saved", "registry", p.name, "target", p.target(), "count", len(items))
	span.SetStatus(codes.Ok, "")
	return true
}

// load reads the collection and, from a SequencedGateway, the stored next id.
func (p persister[T]) load(ctx context.Context) ([]T, int, LoadResult) {
	ctx, span := p.tracer.Start(ctx, tracing.SpanPrefixRegistry+p.name+".load")
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrRegistryName, p.name),
		attribute.String(tracing.AttrRegistryTarget, p.target()),
	)

	if p.gateway == nil {
		log.Error(log.CatRegistry, "Load skipped, no gateway bound", "registry", p.name)
		span.SetStatus(codes.Error, "no gateway bound")
		return nil, 0, LoadFailed
	}
	var (
		items  []T
		nextID int
		err    error
	)
	if sg, ok := p.gateway.(SequencedGateway[T]); ok {
		items, nextID, err = sg.LoadWithNextID(ctx)
	} else {
		items, err = p.gateway.Load(ctx)
	}
	if errors.Is(err, ErrNoData) {
		log.Info(log.CatRegistry, "No data found, starting empty", "registry", p.name, "target", p.target())
		span.SetAttributes(attribute.String(tracing.AttrRegistryOutcome, LoadNoData.String()))
		return nil, 0, LoadNoData
	}
	if err != nil {
		log.ErrorErr(log.CatRegistry, "Load failed", err, "registry", p.name, "target", p.target())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, LoadFailed
	}

	log.Debug(log.CatRegistry, "Loaded", "registry", p.name, "target", p.target(), "count", len(items))
	span.SetAttributes(
		attribute.Int(tracing.AttrRegistryCount, len(items)),
		attribute.String(tracing.AttrRegistryOutcome, LoadOK.String()),
	)
	span.SetStatus(codes.Ok, "")
	return items, nextID, LoadOK
}
