package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"voterroll/internal/audit/mocks"
	"voterroll/internal/platform/kafka/producer"
)

type StreamingStoreSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	producer *mocks.MockMessageProducer
	local    *InMemoryStore
	store    *StreamingStore
}

func TestStreamingStoreSuite(t *testing.T) {
	suite.Run(t, new(StreamingStoreSuite))
}

func (s *StreamingStoreSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.producer = mocks.NewMockMessageProducer(s.ctrl)
	s.local = NewInMemoryStore()
	s.store = NewStreamingStore(s.local, s.producer, "voter-journal")
}

func (s *StreamingStoreSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *StreamingStoreSuite) TestAppend_PublishesKeyedByEpicID() {
	event := Event{ID: "evt-1", Action: ActionVoterVerified, EpicID: "ABC1234567", Fields: []string{"verification_status"}}

	s.producer.EXPECT().
		Produce(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *producer.Message) error {
			s.Equal("voter-journal", msg.Topic)
			s.Equal("ABC1234567", string(msg.Key))
			s.Equal("voter_verified", msg.Headers["event_type"])
			s.Equal("evt-1", msg.Headers["event_id"])

			var decoded Event
			s.Require().NoError(json.Unmarshal(msg.Value, &decoded))
			s.Equal(event.Fields, decoded.Fields)
			return nil
		})

	s.Require().NoError(s.store.Append(context.Background(), event))

	history, err := s.store.ListByVoter(context.Background(), "ABC1234567")
	s.Require().NoError(err)
	s.Len(history, 1)
}

func (s *StreamingStoreSuite) TestAppend_BulkEventsKeyedByAction() {
	s.producer.EXPECT().
		Produce(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *producer.Message) error {
			s.Equal("registry_hydrated", string(msg.Key))
			return nil
		})

	s.Require().NoError(s.store.Append(context.Background(), Event{Action: ActionRegistryHydrated, Count: 5}))
}

func (s *StreamingStoreSuite) TestAppend_WrapsProducerError() {
	brokerErr := errors.New("broker unavailable")
	s.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(brokerErr)

	err := s.store.Append(context.Background(), Event{Action: ActionVoterInserted, EpicID: "DEF2345678"})

	s.ErrorIs(err, brokerErr)
	s.Len(s.local.All(), 1)
}
