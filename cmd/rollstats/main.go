package main

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"voterroll/internal/audit"
	"voterroll/internal/platform/config"
	"voterroll/internal/platform/database"
	"voterroll/internal/platform/kafka/producer"
	"voterroll/internal/platform/logger"
	platformredis "voterroll/internal/platform/redis"
	"voterroll/internal/registry/export"
	"voterroll/internal/registry/metrics"
	"voterroll/internal/registry/service"
	"voterroll/internal/registry/source"
	"voterroll/internal/registry/tracer"
	"voterroll/internal/registry/views"
	"voterroll/internal/selection"
	"voterroll/internal/selection/store"
)

// main loads the configured part of the roll, logs its statistics, writes the
// optional dashboard and restores the operator's saved selection.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("rollstats failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	m := metrics.New()

	journal, closeJournal, err := newJournal(cfg, log)
	if err != nil {
		return err
	}
	defer closeJournal()

	reg := service.New(
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithJournal(journal),
		service.WithTracer(tracer.NewOTel()),
	)

	pool, err := database.New(ctx, database.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close() //nolint:errcheck // shutdown

	if pool == nil {
		log.Warn("DATABASE_URL not set, registry stays empty")
	} else {
		loader := source.NewLoader(source.NewPostgresFetcher(pool.DB()), reg,
			source.WithLoaderTracer(tracer.NewOTel()),
			source.WithLoaderLogger(log),
			source.WithConcurrency(cfg.FetchConcurrency),
		)
		res, err := loader.Load(ctx, source.FetchFilters{
			BoothIDs:       cfg.BoothIDList(),
			ConstituencyID: cfg.ConstituencyID,
			Limit:          cfg.FetchLimit,
		})
		if err != nil {
			kind, _ := source.KindOf(err)
			log.Error("roll fetch failed", "kind", kind, "error", err)
			return err
		}
		log.Info("roll loaded",
			"accepted", res.Accepted,
			"duplicates", res.Duplicates,
			"unkeyed", res.Unkeyed,
		)
	}

	logStats(log, reg)

	if cfg.ExportPath != "" {
		var opts []export.Option
		if cfg.ExportMaskContacts {
			opts = append(opts, export.WithMaskedContacts())
		}
		if err := export.WriteFile(cfg.ExportPath, reg, opts...); err != nil {
			return err
		}
		log.Info("dashboard exported", "path", cfg.ExportPath)
	}

	return restoreSelection(ctx, cfg, log, reg, m)
}

// newJournal returns the change journal. Events are mirrored to Kafka when
// brokers are configured.
func newJournal(cfg *config.Config, log *slog.Logger) (*audit.Publisher, func(), error) {
	var st audit.Store = audit.NewInMemoryStore()
	var p *producer.Producer
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		var err error
		p, err = producer.New(producer.Config{
			Brokers:         cfg.KafkaBrokers,
			Acks:            cfg.KafkaAcks,
			Retries:         3,
			DeliveryTimeout: 30 * time.Second,
		}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("create journal producer: %w", err)
		}
		st = audit.NewStreamingStore(st, p, cfg.JournalTopic)
		log.Info("journal streaming to kafka", "topic", cfg.JournalTopic, "brokers", brokers)
	}

	pub := audit.NewPublisher(st, audit.WithAsyncBuffer(256), audit.WithPublisherLogger(log))
	return pub, func() {
		pub.Close()
		if p != nil {
			_ = p.Close()
		}
	}, nil
}

func logStats(log *slog.Logger, reg *service.Registry) {
	stats := reg.AggregateStats()
	log.Info("roll statistics",
		"total", stats.Total,
		"verified", stats.Verified,
		"unverified", stats.Unverified,
		"male", stats.Male,
		"female", stats.Female,
		"other", stats.Other,
		"age_groups", stats.AgeGroups,
	)

	booths := reg.BoothWiseStats()
	for _, id := range slices.Sorted(maps.Keys(booths)) {
		b := booths[id]
		log.Debug("booth statistics",
			"booth_id", id,
			"total", b.Total,
			"verified", b.Verified,
			"unverified", b.Unverified,
		)
	}
}

func restoreSelection(ctx context.Context, cfg *config.Config, log *slog.Logger, reg *service.Registry, m *metrics.Metrics) error {
	rc, err := platformredis.New(ctx, cfg.Redis(), platformredis.NewPoolMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		return err
	}

	opts := []selection.Option{selection.WithLogger(log), selection.WithMetrics(m)}
	if rc != nil {
		defer rc.Close() //nolint:errcheck // shutdown
		st := store.NewResilientStore(store.NewRedisStore(rc.Client, cfg.SelectionTTL), store.WithResilientLogger(log))
		opts = append(opts, selection.WithStore(st, cfg.SelectionKey))
	}
	sel := selection.New(opts...)
	if err := sel.Restore(ctx); err != nil {
		log.Warn("selection restore failed", "key", cfg.SelectionKey, "error", err)
	}

	cache := views.New(reg, views.WithMetrics(m), views.WithSelection(sel))
	log.Info("selection restored",
		"key", cfg.SelectionKey,
		"selected", sel.Count(),
		"in_registry", len(cache.SelectedRecords()),
		"incomplete_records", len(cache.IncompleteRecords()),
	)

	if rc != nil {
		rc.RecordPoolStats()
	}
	return nil
}
