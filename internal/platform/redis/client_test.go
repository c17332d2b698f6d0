package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voterroll/internal/platform/config"
)

func TestNew_EmptyURL(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{}, nil)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNew_BadURL(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{URL: "://nope"}, nil)
	assert.ErrorContains(t, err, "parse redis URL")
}

func TestNew_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), config.RedisConfig{URL: "redis://" + addr}, nil)
	assert.ErrorContains(t, err, "redis ping failed")
}

func TestClient_HealthAndPoolStats(t *testing.T) {
	mr := miniredis.RunT(t)
	m := NewPoolMetrics(prometheus.NewRegistry())

	c, err := New(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr(), PoolSize: 2}, m)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Health(context.Background()))
	c.RecordPoolStats()
	first := testutil.ToFloat64(m.Hits) + testutil.ToFloat64(m.Misses)
	assert.Positive(t, first)
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.TotalConns), float64(1))

	require.NoError(t, c.Health(context.Background()))
	c.RecordPoolStats()
	assert.Greater(t, testutil.ToFloat64(m.Hits)+testutil.ToFloat64(m.Misses), first)
}
