package store

import (
	"context"
	"errors"
	"log/slog"

	"voterroll/pkg/platform/circuit"
)

// ResilientStore writes through to a local copy and guards the primary store
// with a circuit breaker. While the breaker is open, failed primary calls
// are answered from the local copy instead of returning an error.
type ResilientStore struct {
	primary Store
	local   *InMemoryStore
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type ResilientOption func(*ResilientStore)

func WithBreaker(b *circuit.Breaker) ResilientOption {
	return func(s *ResilientStore) {
		s.breaker = b
	}
}

func WithResilientLogger(logger *slog.Logger) ResilientOption {
	return func(s *ResilientStore) {
		s.logger = logger
	}
}

func NewResilientStore(primary Store, opts ...ResilientOption) *ResilientStore {
	s := &ResilientStore{
		primary: primary,
		local:   NewInMemoryStore(),
		breaker: circuit.New("selection_store"),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ResilientStore) Save(ctx context.Context, key string, ids []string) error {
	_ = s.local.Save(ctx, key, ids)
	err := s.primary.Save(ctx, key, ids)
	s.observe(ctx, err)
	if err != nil && s.breaker.Open() {
		s.logger.WarnContext(ctx, "selection kept locally, primary store unavailable",
			"key", key,
			"circuit", s.breaker.Name(),
		)
		return nil
	}
	return err
}

func (s *ResilientStore) Load(ctx context.Context, key string) ([]string, error) {
	ids, err := s.primary.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		s.observe(ctx, nil)
		return nil, err
	}
	s.observe(ctx, err)
	if err == nil {
		_ = s.local.Save(ctx, key, ids)
		return ids, nil
	}
	if s.breaker.Open() {
		if local, lerr := s.local.Load(ctx, key); lerr == nil {
			s.logger.WarnContext(ctx, "serving local selection, primary store unavailable",
				"key", key,
				"circuit", s.breaker.Name(),
			)
			return local, nil
		}
	}
	return nil, err
}

func (s *ResilientStore) observe(ctx context.Context, err error) {
	switch s.breaker.Observe(err) {
	case circuit.Opened:
		s.logger.ErrorContext(ctx, "circuit breaker opened", "circuit", s.breaker.Name(), "error", err)
	case circuit.Closed:
		s.logger.InfoContext(ctx, "circuit breaker closed", "circuit", s.breaker.Name())
	}
}
