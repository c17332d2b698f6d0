package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps the journal in process. Events without an EPIC id
// (bulk actions) are only reachable through All.
type InMemoryStore struct {
	mu      sync.RWMutex
	all     []Event
	byVoter map[string][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byVoter: make(map[string][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append(s.all, event)
	if event.EpicID != "" {
		s.byVoter[event.EpicID] = append(s.byVoter[event.EpicID], event)
	}
	return nil
}

func (s *InMemoryStore) ListByVoter(_ context.Context, epicID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.byVoter[epicID]...), nil
}

// All returns every event in append order.
func (s *InMemoryStore) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.all...)
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = nil
	s.byVoter = make(map[string][]Event)
}
