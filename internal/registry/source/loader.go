package source

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"voterroll/internal/registry/service"
	"voterroll/internal/registry/tracer"
	"voterroll/internal/voter/models"
	pstrings "voterroll/pkg/platform/strings"
)

// Hydrater is the registry's ingestion point.
type Hydrater interface {
	Hydrate(ctx context.Context, raw []models.Fields) service.HydrateResult
}

// Loader fetches a roll and hands it to the registry in one Hydrate call.
// With several booths it fetches them concurrently; any failure aborts the
// load and leaves the registry untouched.
type Loader struct {
	fetcher     Fetcher
	registry    Hydrater
	tracer      tracer.Tracer
	logger      *slog.Logger
	concurrency int
}

type LoaderOption func(*Loader)

func WithLoaderTracer(t tracer.Tracer) LoaderOption {
	return func(l *Loader) {
		l.tracer = t
	}
}

func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithConcurrency caps in-flight booth fetches. Values below 1 are ignored.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

func NewLoader(fetcher Fetcher, registry Hydrater, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:     fetcher,
		registry:    registry,
		tracer:      tracer.NewNoop(),
		logger:      slog.New(slog.DiscardHandler),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and hydrates. Fetch errors are returned exactly as the
// Fetcher produced them.
func (l *Loader) Load(ctx context.Context, filters FetchFilters) (res service.HydrateResult, err error) {
	ctx, span := l.tracer.Start(ctx, tracer.SpanLoad)
	defer func() { span.End(err) }()

	booths := pstrings.DedupeAndTrim(filters.BoothIDs)
	span.SetAttributes(tracer.Strings(tracer.AttrBoothIDs, booths))
	var raw []models.Fields
	if len(booths) <= 1 {
		raw, err = l.fetcher.Fetch(ctx, filters)
	} else {
		raw, err = l.fetchBooths(ctx, filters, booths)
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "roll fetch failed", "error", err, "booths", len(booths))
		return service.HydrateResult{}, err
	}

	span.SetAttributes(tracer.Int(tracer.AttrRecords, len(raw)))
	return l.registry.Hydrate(ctx, raw), nil
}

func (l *Loader) fetchBooths(ctx context.Context, filters FetchFilters, booths []string) ([]models.Fields, error) {
	results := make([][]models.Fields, len(booths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, booth := range booths {
		g.Go(func() error {
			fctx, span := l.tracer.Start(gctx, tracer.SpanFetchBooth, tracer.String(tracer.AttrBoothID, booth))
			f := filters
			f.BoothIDs = []string{booth}
			recs, err := l.fetcher.Fetch(fctx, f)
			span.End(err)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	raw := make([]models.Fields, 0, total)
	for _, r := range results {
		raw = append(raw, r...)
	}
	return raw, nil
}
