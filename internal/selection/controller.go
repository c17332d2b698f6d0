// Package selection tracks the EPIC ids a user has picked, independently of
// any filter. Bulk operations are always relative to the caller's current
// view.
package selection

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"voterroll/internal/registry/metrics"
	"voterroll/internal/selection/store"
	pstrings "voterroll/pkg/platform/strings"
)

// Controller owns the selection set. Every change bumps Version and, when a
// Store is configured, saves the full id list.
type Controller struct {
	mu      sync.RWMutex
	ids     map[string]struct{}
	version uint64

	saveMu  sync.Mutex
	store   store.Store
	key     string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Controller)

// WithStore persists the selection under key.
func WithStore(s store.Store, key string) Option {
	return func(c *Controller) {
		c.store = s
		c.key = key
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

func New(opts ...Option) *Controller {
	c := &Controller{
		ids:    make(map[string]struct{}),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select adds id. Blank ids are ignored.
func (c *Controller) Select(ctx context.Context, id string) {
	c.mutate(ctx, func(ids map[string]struct{}) bool {
		id = strings.TrimSpace(id)
		if id == "" {
			return false
		}
		if _, ok := ids[id]; ok {
			return false
		}
		ids[id] = struct{}{}
		return true
	})
}

func (c *Controller) Deselect(ctx context.Context, id string) {
	c.mutate(ctx, func(ids map[string]struct{}) bool {
		id = strings.TrimSpace(id)
		if _, ok := ids[id]; !ok {
			return false
		}
		delete(ids, id)
		return true
	})
}

// Toggle flips id and reports whether it is now selected.
func (c *Controller) Toggle(ctx context.Context, id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	var selected bool
	c.mutate(ctx, func(ids map[string]struct{}) bool {
		if _, ok := ids[id]; ok {
			delete(ids, id)
			return true
		}
		ids[id] = struct{}{}
		selected = true
		return true
	})
	return selected
}

// SelectAll replaces the selection with viewIDs. Ids outside the view are
// dropped rather than kept.
func (c *Controller) SelectAll(ctx context.Context, viewIDs []string) {
	next := pstrings.DedupeAndTrim(viewIDs)
	c.mutate(ctx, func(ids map[string]struct{}) bool {
		if len(ids) == len(next) && containsAll(ids, next) {
			return false
		}
		clear(ids)
		for _, id := range next {
			ids[id] = struct{}{}
		}
		return true
	})
}

func (c *Controller) Clear(ctx context.Context) {
	c.mutate(ctx, func(ids map[string]struct{}) bool {
		if len(ids) == 0 {
			return false
		}
		clear(ids)
		return true
	})
}

func (c *Controller) HasSelection() bool {
	return c.Count() > 0
}

func (c *Controller) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}

// IsAllSelected reports whether every id in viewIDs is selected. An empty
// view is never all-selected.
func (c *Controller) IsAllSelected(viewIDs []string) bool {
	view := pstrings.DedupeAndTrim(viewIDs)
	if len(view) == 0 {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return containsAll(c.ids, view)
}

func (c *Controller) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ids[strings.TrimSpace(id)]
	return ok
}

// IDs returns the selection sorted.
func (c *Controller) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sortedLocked()
}

func (c *Controller) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Restore replaces the selection with the stored list. A missing entry
// leaves the selection empty and is not an error.
func (c *Controller) Restore(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	saved, err := c.store.Load(ctx, c.key)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	c.mu.Lock()
	clear(c.ids)
	for _, id := range pstrings.DedupeAndTrim(saved) {
		c.ids[id] = struct{}{}
	}
	c.version++
	n := len(c.ids)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.SetSelectionSize(n)
	}
	c.logger.InfoContext(ctx, "selection restored", "key", c.key, "count", n)
	return nil
}

func (c *Controller) mutate(ctx context.Context, fn func(ids map[string]struct{}) bool) {
	c.mu.Lock()
	if !fn(c.ids) {
		c.mu.Unlock()
		return
	}
	c.version++
	n := len(c.ids)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.SetSelectionSize(n)
	}
	if c.store != nil {
		c.persist(ctx)
	}
}

// persist saves the latest selection. Saves are serialized and each one
// reads the set afresh, so the last save always carries the newest state.
func (c *Controller) persist(ctx context.Context) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	ids := c.IDs()
	if err := c.store.Save(ctx, c.key, ids); err != nil {
		c.logger.ErrorContext(ctx, "failed to persist selection",
			"error", err,
			"key", c.key,
			"count", len(ids),
		)
	}
}

func (c *Controller) sortedLocked() []string {
	out := make([]string, 0, len(c.ids))
	for id := range c.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func containsAll(set map[string]struct{}, ids []string) bool {
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
