package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"voterroll/internal/platform/kafka/producer"
)

//go:generate mockgen -source=kafka.go -destination=mocks/mocks.go -package=mocks MessageProducer

// MessageProducer is the subset of the Kafka producer the journal needs.
type MessageProducer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// StreamingStore appends to a local Store and mirrors every event to a Kafka
// topic keyed by EPIC id, so consumers see per-voter ordering.
type StreamingStore struct {
	local    Store
	producer MessageProducer
	topic    string
}

func NewStreamingStore(local Store, p MessageProducer, topic string) *StreamingStore {
	return &StreamingStore{local: local, producer: p, topic: topic}
}

func (s *StreamingStore) Append(ctx context.Context, event Event) error {
	if err := s.local.Append(ctx, event); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode journal event: %w", err)
	}
	key := event.EpicID
	if key == "" {
		key = string(event.Action)
	}
	msg := &producer.Message{
		Topic: s.topic,
		Key:   []byte(key),
		Value: payload,
		Headers: map[string]string{
			"event_id":   event.ID,
			"event_type": string(event.Action),
		},
	}
	if err := s.producer.Produce(ctx, msg); err != nil {
		return fmt.Errorf("publish journal event: %w", err)
	}
	return nil
}

func (s *StreamingStore) ListByVoter(ctx context.Context, epicID string) ([]Event, error) {
	return s.local.ListByVoter(ctx, epicID)
}
