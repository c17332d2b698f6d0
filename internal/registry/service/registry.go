// Package service holds the in-memory voter registry: bulk hydration,
// single-record mutation, filtering, search and aggregate statistics.
package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"voterroll/internal/audit"
	"voterroll/internal/registry/metrics"
	"voterroll/internal/registry/tracer"
	"voterroll/internal/voter/models"
)

// Journal receives change events. *audit.Publisher satisfies it.
type Journal interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Registry owns the current set of voter records. Reads share an immutable
// slice; every mutation swaps in a new slice and bumps the version, so a
// Snapshot stays valid after later writes.
type Registry struct {
	mu      sync.RWMutex
	records []*models.Voter
	index   map[string]int
	version uint64

	logger  *slog.Logger
	metrics *metrics.Metrics
	journal Journal
	tracer  tracer.Tracer
	now     func() time.Time
}

// Option configures the Registry.
type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithJournal records inserts, updates and hydrations.
func WithJournal(j Journal) Option {
	return func(r *Registry) {
		r.journal = j
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(r *Registry) {
		r.tracer = t
	}
}

// WithClock overrides the ingest and update timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{
		index:  make(map[string]int),
		logger: slog.New(slog.DiscardHandler),
		tracer: tracer.NewNoop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HydrateResult summarizes one bulk load.
type HydrateResult struct {
	// Accepted is the number of distinct records now held.
	Accepted int
	// Duplicates counts raw records whose EPIC id repeated an earlier one in
	// the batch. The later record replaced the earlier in place.
	Duplicates int
	// Unkeyed counts records held without an EPIC id. They are included in
	// Accepted but cannot be reached by GetByID or Update.
	Unkeyed int
}

// Snapshot is a point-in-time view of the registry. Records must not be
// mutated.
type Snapshot struct {
	Version uint64
	Records []*models.Voter
}

// Hydrate replaces the registry contents with raw. Records are built
// leniently and accepted even when Validate would fail, including records
// with no EPIC id, which are held but left out of the id index. A repeated
// EPIC id keeps the position of its first occurrence and the data of its last.
func (r *Registry) Hydrate(ctx context.Context, raw []models.Fields) HydrateResult {
	ctx, span := r.tracer.Start(ctx, tracer.SpanHydrate, tracer.Int(tracer.AttrRecords, len(raw)))
	start := time.Now()
	now := r.now()

	records := make([]*models.Voter, 0, len(raw))
	index := make(map[string]int, len(raw))
	var res HydrateResult
	for _, f := range raw {
		v := models.New(f, now)
		if v.EpicID == "" {
			records = append(records, v)
			res.Unkeyed++
			continue
		}
		if i, ok := index[v.EpicID]; ok {
			records[i] = v
			res.Duplicates++
			r.logger.WarnContext(ctx, "duplicate epic_id in hydrate batch, keeping last",
				"epic_id", v.EpicID,
			)
			continue
		}
		index[v.EpicID] = len(records)
		records = append(records, v)
	}
	res.Accepted = len(records)

	r.mu.Lock()
	r.records = records
	r.index = index
	r.version++
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.ObserveHydrate(res.Accepted, res.Duplicates, res.Unkeyed, time.Since(start).Seconds())
		r.metrics.SetRecords(res.Accepted)
	}
	r.logger.InfoContext(ctx, "registry hydrated",
		"accepted", res.Accepted,
		"duplicates", res.Duplicates,
		"unkeyed", res.Unkeyed,
	)
	r.emit(ctx, span, audit.Event{Action: audit.ActionRegistryHydrated, Count: res.Accepted})

	span.SetAttributes(
		tracer.Int(tracer.AttrAccepted, res.Accepted),
		tracer.Int(tracer.AttrDuplicates, res.Duplicates),
		tracer.Int(tracer.AttrUnkeyed, res.Unkeyed),
	)
	span.End(nil)
	return res
}

// Insert adds one record. It returns false when the EPIC id is already
// present. A record with no EPIC id is appended without being indexed.
func (r *Registry) Insert(ctx context.Context, f models.Fields) (*models.Voter, bool) {
	v := models.New(f, r.now())

	r.mu.Lock()
	if v.EpicID != "" {
		if _, exists := r.index[v.EpicID]; exists {
			r.mu.Unlock()
			return nil, false
		}
		r.index[v.EpicID] = len(r.records)
	}
	r.records = append(slices.Clip(r.records), v)
	r.version++
	size := len(r.records)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.SetRecords(size)
	}
	r.emit(ctx, nil, audit.Event{Action: audit.ActionVoterInserted, EpicID: v.EpicID, BoothID: v.BoothID})
	return v, true
}

// GetByID returns the record keyed by epicID.
func (r *Registry) GetByID(epicID string) (*models.Voter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[strings.TrimSpace(epicID)]
	if !ok {
		return nil, false
	}
	return r.records[i], true
}

// Update merges p into a copy of the record and swaps the copy in. An unknown
// epicID returns (nil, false) and changes nothing.
func (r *Registry) Update(ctx context.Context, epicID string, p models.Patch) (*models.Voter, bool) {
	ctx, span := r.tracer.Start(ctx, tracer.SpanUpdate)
	epicID = strings.TrimSpace(epicID)

	r.mu.Lock()
	i, ok := r.index[epicID]
	if !ok {
		r.mu.Unlock()
		if r.metrics != nil {
			r.metrics.RecordUpdate(false)
		}
		span.SetAttributes(tracer.Bool(tracer.AttrFound, false))
		span.End(nil)
		return nil, false
	}
	before := r.records[i]
	updated := before.Clone()
	updated.Update(p, r.now())
	records := slices.Clone(r.records)
	records[i] = updated
	r.records = records
	r.version++
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.RecordUpdate(true)
	}
	action := audit.ActionVoterUpdated
	if !before.IsVerified() && updated.IsVerified() {
		action = audit.ActionVoterVerified
	}
	r.emit(ctx, span, audit.Event{
		Action:  action,
		EpicID:  updated.EpicID,
		BoothID: updated.BoothID,
		Fields:  p.FieldNames(),
	})
	span.SetAttributes(tracer.Bool(tracer.AttrFound, true))
	span.End(nil)
	return updated, true
}

// Snapshot returns the current records and version.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{Version: r.version, Records: r.records}
}

// Version increments on every Hydrate, Insert and Update.
func (r *Registry) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func (r *Registry) all() []*models.Voter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records
}

func (r *Registry) emit(ctx context.Context, span tracer.Span, event audit.Event) {
	if r.journal == nil {
		return
	}
	if err := r.journal.Emit(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "failed to journal registry change",
			"error", err,
			"action", event.Action,
			"epic_id", event.EpicID,
		)
		return
	}
	if span != nil {
		span.AddEvent(tracer.EventJournalEmitted, tracer.String("action", string(event.Action)))
	}
}
