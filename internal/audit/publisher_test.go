package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type PublisherSuite struct {
	suite.Suite
	store *InMemoryStore
	now   time.Time
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (s *PublisherSuite) TestEmit_Sync() {
	p := NewPublisher(s.store, WithClock(func() time.Time { return s.now }))

	s.Require().NoError(p.Emit(context.Background(), Event{Action: ActionVoterUpdated, EpicID: "ABC1234567", Fields: []string{"mobile"}}))
	s.Require().NoError(p.Emit(context.Background(), Event{Action: ActionRegistryHydrated, Count: 5}))

	history, err := p.History(context.Background(), "ABC1234567")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.NotEmpty(history[0].ID)
	s.Equal(s.now, history[0].Timestamp)
	s.Equal([]string{"mobile"}, history[0].Fields)
	s.Len(s.store.All(), 2)
}

func (s *PublisherSuite) TestEmit_KeepsCallerIDAndTimestamp() {
	p := NewPublisher(s.store)
	ts := s.now.Add(-time.Hour)

	s.Require().NoError(p.Emit(context.Background(), Event{ID: "evt-1", Timestamp: ts, Action: ActionVoterInserted, EpicID: "DEF2345678"}))

	got := s.store.All()
	s.Require().Len(got, 1)
	s.Equal("evt-1", got[0].ID)
	s.Equal(ts, got[0].Timestamp)
}

func (s *PublisherSuite) TestEmit_AsyncDrainsOnClose() {
	p := NewPublisher(s.store, WithAsyncBuffer(16))
	for i := 0; i < 10; i++ {
		s.Require().NoError(p.Emit(context.Background(), Event{Action: ActionVoterVerified, EpicID: "GHI3456789"}))
	}
	p.Close()

	history, err := s.store.ListByVoter(context.Background(), "GHI3456789")
	s.Require().NoError(err)
	s.Len(history, 10)
}

func (s *PublisherSuite) TestEmit_SyncSurfacesStoreErrors() {
	p := NewPublisher(failingStore{err: errors.New("disk full")})
	err := p.Emit(context.Background(), Event{Action: ActionVoterInserted})
	s.EqualError(err, "disk full")
}

type failingStore struct{ err error }

func (f failingStore) Append(context.Context, Event) error { return f.err }

func (f failingStore) ListByVoter(context.Context, string) ([]Event, error) { return nil, f.err }

func TestInMemoryStore_Clear(t *testing.T) {
	st := NewInMemoryStore()
	_ = st.Append(context.Background(), Event{Action: ActionVoterInserted, EpicID: "ABC1234567"})
	st.Clear()

	history, err := st.ListByVoter(context.Background(), "ABC1234567")
	if err != nil || len(history) != 0 || len(st.All()) != 0 {
		t.Fatalf("expected empty store after Clear, got %v %v", history, err)
	}
}
