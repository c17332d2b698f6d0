// Package views derives grouped, memoized views from registry snapshots and
// the current selection. Each view recomputes only when its inputs' version
// changes.
package views

import (
	"sync"

	"voterroll/internal/registry/metrics"
	"voterroll/internal/registry/service"
	"voterroll/internal/voter/models"
)

// View names, used as metric labels and for Recomputations.
const (
	ViewByID           = "by_id"
	ViewByBooth        = "by_booth"
	ViewByConstituency = "by_constituency"
	ViewByGender       = "by_gender"
	ViewByAgeGroup     = "by_age_group"
	ViewSelected       = "selected_records"
	ViewIncomplete     = "incomplete_records"
)

// SnapshotSource supplies registry snapshots. *service.Registry satisfies it.
type SnapshotSource interface {
	Snapshot() service.Snapshot
}

// SelectionSource supplies the selected ids and a version that changes with
// them. *selection.Controller satisfies it.
type SelectionSource interface {
	IDs() []string
	Version() uint64
}

type memo[K comparable, V any] struct {
	ok  bool
	key K
	val V
}

type selectionKey struct {
	snapshot  uint64
	selection uint64
}

// Cache memoizes derived views. Returned maps and slices are shared between
// callers and must not be modified.
type Cache struct {
	mu        sync.Mutex
	source    SnapshotSource
	selection SelectionSource
	metrics   *metrics.Metrics
	counts    map[string]int

	byID           memo[uint64, map[string]*models.Voter]
	byBooth        memo[uint64, map[string][]*models.Voter]
	byConstituency memo[uint64, map[string][]*models.Voter]
	byGender       memo[uint64, map[models.Gender][]*models.Voter]
	byAgeGroup     memo[uint64, AgeBuckets]
	incomplete     memo[uint64, []*models.Voter]
	selected       memo[selectionKey, []*models.Voter]
}

type Option func(*Cache)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithSelection enables SelectedRecords.
func WithSelection(sel SelectionSource) Option {
	return func(c *Cache) {
		c.selection = sel
	}
}

func New(source SnapshotSource, opts ...Option) *Cache {
	c := &Cache{source: source, counts: make(map[string]int)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// lookup returns m's value for key, computing it first when the key moved.
// Callers hold c.mu.
func lookup[K comparable, V any](c *Cache, view string, m *memo[K, V], key K, compute func() V) V {
	if m.ok && m.key == key {
		return m.val
	}
	m.val = compute()
	m.key = key
	m.ok = true
	c.counts[view]++
	if c.metrics != nil {
		c.metrics.RecordRecompute(view)
	}
	return m.val
}

func (c *Cache) ByID() map[string]*models.Voter {
	snap := c.source.Snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byIDLocked(snap)
}

func (c *Cache) byIDLocked(snap service.Snapshot) map[string]*models.Voter {
	return lookup(c, ViewByID, &c.byID, snap.Version, func() map[string]*models.Voter {
		return IndexByID(snap.Records)
	})
}

func (c *Cache) ByBooth() map[string][]*models.Voter {
	snap := c.source.Snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	return lookup(c, ViewByBooth, &c.byBooth, snap.Version, func() map[string][]*models.Voter {
		return GroupByBooth(snap.Records)
	})
}

func (c *Cache) ByConstituency() map[string][]*models.Voter {
	snap := c.source.Snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	return lookup(c, ViewByConstituency, &c.byConstituency, snap.Version, func() map[string][]*models.Voter {
		return GroupByConstituency(snap.Records)
	})
}

func (c *Cache) ByGender() map[models.Gender][]*models.Voter {
	snap := c.source.Snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	return lookup(c, ViewByGender, &c.byGender, snap.Version, func() map[models.Gender][]*models.Voter {
		return GroupByGender(snap.Records)
	})
}

func (c *Cache) ByAgeGroup() AgeBuckets {
	snap := c.source.Snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	return lookup(c, ViewByAgeGroup, &c.byAgeGroup, snap.Version, func() AgeBuckets {
		return BucketByAge(snap.Records)
	})
}

func (c *Cache) IncompleteRecords() []*models.Voter {
	snap := c.source.Snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	return lookup(c, ViewIncomplete, &c.incomplete, snap.Version, func() []*models.Voter {
		return Incomplete(snap.Records)
	})
}

// SelectedRecords resolves the selection through ByID in selection order,
// dropping ids the registry no longer holds. Without a selection source it
// returns an empty slice.
func (c *Cache) SelectedRecords() []*models.Voter {
	if c.selection == nil {
		return []*models.Voter{}
	}
	snap := c.source.Snapshot()
	selVersion := c.selection.Version()
	ids := c.selection.IDs()

	c.mu.Lock()
	defer c.mu.Unlock()
	key := selectionKey{snapshot: snap.Version, selection: selVersion}
	return lookup(c, ViewSelected, &c.selected, key, func() []*models.Voter {
		return Resolve(c.byIDLocked(snap), ids)
	})
}

// Recomputations reports how many times view has been computed.
func (c *Cache) Recomputations(view string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[view]
}
