// Package config loads rollstats configuration from the environment and an
// optional .env file using Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	pstrings "voterroll/pkg/platform/strings"
	"voterroll/pkg/validation"
)

// Config holds application configuration. Env vars override the .env file.
type Config struct {
	Env      string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS" validate:"gte=1"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`

	// BoothIDs is a comma-separated booth list; empty loads every booth.
	BoothIDs         string `mapstructure:"BOOTH_IDS"`
	ConstituencyID   string `mapstructure:"CONSTITUENCY_ID"`
	FetchLimit       int    `mapstructure:"FETCH_LIMIT" validate:"gte=0"`
	FetchConcurrency int    `mapstructure:"FETCH_CONCURRENCY" validate:"min=1,max=64"`

	RedisURL          string        `mapstructure:"REDIS_URL"`
	RedisPoolSize     int           `mapstructure:"REDIS_POOL_SIZE" validate:"gte=1"`
	RedisMinIdleConns int           `mapstructure:"REDIS_MIN_IDLE_CONNS" validate:"gte=0"`
	RedisDialTimeout  time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
	RedisReadTimeout  time.Duration `mapstructure:"REDIS_READ_TIMEOUT"`
	RedisWriteTimeout time.Duration `mapstructure:"REDIS_WRITE_TIMEOUT"`
	SelectionKey      string        `mapstructure:"SELECTION_KEY" validate:"notblank"`
	SelectionTTL      time.Duration `mapstructure:"SELECTION_TTL"`

	// KafkaBrokers is a comma-separated broker list; empty keeps the journal
	// in memory.
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	KafkaAcks    string `mapstructure:"KAFKA_ACKS" validate:"oneof=all 1 0"`
	JournalTopic string `mapstructure:"JOURNAL_TOPIC" validate:"notblank"`

	// ExportPath, when set, receives an XLSX dashboard after hydration.
	ExportPath string `mapstructure:"EXPORT_PATH"`
	// ExportMaskContacts hides all but the last four mobile digits in the
	// export.
	ExportMaskContacts bool `mapstructure:"EXPORT_MASK_CONTACTS"`
}

// RedisConfig is the subset the Redis client needs.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

var defaults = map[string]any{
	"APP_ENV":              "development",
	"LOG_LEVEL":            "info",
	"DATABASE_URL":         "",
	"DB_MAX_OPEN_CONNS":    25,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": "5m",
	"BOOTH_IDS":            "",
	"CONSTITUENCY_ID":      "",
	"FETCH_LIMIT":          0,
	"FETCH_CONCURRENCY":    4,
	"REDIS_URL":            "",
	"REDIS_POOL_SIZE":      10,
	"REDIS_MIN_IDLE_CONNS": 2,
	"REDIS_DIAL_TIMEOUT":   "5s",
	"REDIS_READ_TIMEOUT":   "3s",
	"REDIS_WRITE_TIMEOUT":  "3s",
	"SELECTION_KEY":        "default",
	"SELECTION_TTL":        "720h",
	"KAFKA_BROKERS":        "",
	"KAFKA_ACKS":           "all",
	"JOURNAL_TOPIC":        "voter-journal",
	"EXPORT_PATH":          "",
	"EXPORT_MASK_CONTACTS": true,
}

// Load reads .env from the working directory, if present, then the
// environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file. A missing file is ignored.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := validation.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// BoothIDList returns the trimmed, deduplicated booth filter.
func (c *Config) BoothIDList() []string {
	return splitList(c.BoothIDs)
}

// KafkaBrokerList returns broker addresses; nil disables the Kafka journal.
func (c *Config) KafkaBrokerList() []string {
	return splitList(c.KafkaBrokers)
}

func (c *Config) Redis() RedisConfig {
	return RedisConfig{
		URL:          c.RedisURL,
		PoolSize:     c.RedisPoolSize,
		MinIdleConns: c.RedisMinIdleConns,
		DialTimeout:  c.RedisDialTimeout,
		ReadTimeout:  c.RedisReadTimeout,
		WriteTimeout: c.RedisWriteTimeout,
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return pstrings.DedupeAndTrim(strings.Split(s, ","))
}
