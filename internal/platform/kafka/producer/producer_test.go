package producer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestNew_RequiresBrokers(t *testing.T) {
	_, err := New(Config{Brokers: "  "}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brokers not configured")
}

func TestMessageRecord(t *testing.T) {
	msg := &Message{
		Topic:   "voter-journal",
		Key:     []byte("ABC1234567"),
		Value:   []byte(`{"action":"voter_updated"}`),
		Headers: map[string]string{"event_type": "voter_updated"},
	}

	rec := msg.record()

	assert.Equal(t, "voter-journal", rec.Topic)
	assert.Equal(t, []byte("ABC1234567"), rec.Key)
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, "event_type", rec.Headers[0].Key)
	assert.Equal(t, []byte("voter_updated"), rec.Headers[0].Value)
}

func TestProducer_ClosedRejectsProduce(t *testing.T) {
	p, err := New(Config{Brokers: "127.0.0.1:1", Acks: "1"}, nil)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	err = p.Produce(context.Background(), &Message{Topic: "voter-journal"})
	assert.EqualError(t, err, "producer is closed")
	assert.False(t, p.Healthy(context.Background()))
}

func TestAcksFor(t *testing.T) {
	assert.Equal(t, kgo.NoAck(), acksFor("0"))
	assert.Equal(t, kgo.LeaderAck(), acksFor("1"))
	assert.Equal(t, kgo.AllISRAcks(), acksFor("all"))
	assert.Equal(t, kgo.AllISRAcks(), acksFor(""))
}
