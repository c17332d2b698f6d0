package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "voterroll/pkg/domain-errors"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFile(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, 4, cfg.FetchConcurrency)
	assert.Equal(t, "default", cfg.SelectionKey)
	assert.Equal(t, 720*time.Hour, cfg.SelectionTTL)
	assert.Equal(t, "voter-journal", cfg.JournalTopic)
	assert.True(t, cfg.ExportMaskContacts)
	assert.Nil(t, cfg.BoothIDList())
	assert.Nil(t, cfg.KafkaBrokerList())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BOOTH_IDS", " B002, B001 ,B002,")
	t.Setenv("KAFKA_BROKERS", "localhost:9092, localhost:9093")
	t.Setenv("FETCH_CONCURRENCY", "8")
	t.Setenv("REDIS_READ_TIMEOUT", "750ms")
	t.Setenv("LOG_LEVEL", " DEBUG ")

	cfg, err := LoadFile(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"B002", "B001"}, cfg.BoothIDList())
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, cfg.KafkaBrokerList())
	assert.Equal(t, 8, cfg.FetchConcurrency)
	assert.Equal(t, 750*time.Millisecond, cfg.Redis().ReadTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SELECTION_KEY=booth-agent-3\nEXPORT_PATH=/tmp/roll.xlsx\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "booth-agent-3", cfg.SelectionKey)
	assert.Equal(t, "/tmp/roll.xlsx", cfg.ExportPath)

	t.Setenv("SELECTION_KEY", "from-env")
	cfg, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.SelectionKey)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]struct {
		key, value string
		detail     string
	}{
		"concurrency below one": {"FETCH_CONCURRENCY", "0", "fetch_concurrency must be at least 1"},
		"unknown log level":     {"LOG_LEVEL", "verbose", "log_level must be one of [debug info warn error]"},
		"bad acks":              {"KAFKA_ACKS", "2", "kafka_acks must be one of [all 1 0]"},
		"blank selection key":   {"SELECTION_KEY", "  ", "selection_key must not be blank"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := LoadFile(missingEnvFile(t))
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Contains(t, dErrors.DetailsOf(err), tc.detail)
		})
	}
}

func TestRedis(t *testing.T) {
	cfg := &Config{RedisURL: "redis://localhost:6379/0", RedisPoolSize: 3, RedisDialTimeout: time.Second}
	assert.Equal(t, RedisConfig{URL: "redis://localhost:6379/0", PoolSize: 3, DialTimeout: time.Second}, cfg.Redis())
}
