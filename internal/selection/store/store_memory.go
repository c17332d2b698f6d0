package store

import (
	"context"
	"slices"
	"sync"
)

// InMemoryStore keeps selections for the lifetime of the process.
type InMemoryStore struct {
	mu   sync.RWMutex
	sets map[string][]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sets: make(map[string][]string)}
}

func (s *InMemoryStore) Save(_ context.Context, key string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) == 0 {
		delete(s.sets, key)
		return nil
	}
	s.sets[key] = slices.Clone(ids)
	return nil
}

func (s *InMemoryStore) Load(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.sets[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(ids), nil
}
