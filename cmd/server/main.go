package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"carepath/internal/alerts"
	"carepath/internal/billing/overdue"
	"carepath/internal/platform/config"
	"carepath/internal/platform/httpserver"
	"carepath/internal/platform/logger"
	"carepath/internal/platform/middleware"
	platformredis "carepath/internal/platform/redis"
	"carepath/internal/storage"
	"carepath/internal/storage/memory"
	"carepath/internal/storage/postgres"
)

// main wires the store, the background jobs, and the operational HTTP
// surface. Business rules live in the models packages; jobs own their own
// loops and stop on context cancellation.
func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		newUow   func() storage.UnitOfWork
		pool     *pgxpool.Pool
		checkers = map[string]httpserver.HealthChecker{}
	)
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			log.ErrorContext(ctx, "connect postgres", "error", err)
			return err
		}
		defer pool.Close()
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			log.ErrorContext(ctx, "apply schema", "error", err)
			return err
		}
		newUow = func() storage.UnitOfWork { return postgres.NewUnitOfWork(pool) }
		checkers["postgres"] = poolChecker{pool}
	} else {
		log.WarnContext(ctx, "no postgres URL configured, using in-memory store")
		store := memory.NewStore()
		newUow = func() storage.UnitOfWork { return store.NewUnitOfWork() }
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.ErrorContext(ctx, "connect redis", "error", err)
		return err
	}
	var deduper alerts.Deduper = alerts.NewMemoryDeduper()
	if redisClient != nil {
		defer redisClient.Close()
		deduper = alerts.NewRedisDeduper(redisClient.Client)
		checkers["redis"] = redisClient
	}

	alertMetrics := alerts.NewMetrics()
	var publisher alerts.Publisher = alerts.NewMemoryPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := alerts.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.AlertTopic,
			alerts.WithKafkaMetrics(alertMetrics))
		if err != nil {
			log.ErrorContext(ctx, "connect kafka", "error", err)
			return err
		}
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
	} else {
		log.WarnContext(ctx, "no kafka brokers configured, alerts stay in memory")
	}

	scanner := alerts.NewScanner(newUow, publisher, deduper,
		alerts.WithLogger(log), alerts.WithMetrics(alertMetrics))
	marker := overdue.NewMarker(newUow,
		overdue.WithLogger(log), overdue.WithMetrics(overdue.NewMetrics()))

	router := httpserver.Router(checkers)
	srv := httpserver.New(cfg.Server.Addr, middleware.RequestContext(
		middleware.RequestLogger(log)(router)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scanner.Run(gctx, cfg.Jobs.ExpiryScanInterval)
	})
	g.Go(func() error {
		return marker.Run(gctx, cfg.Jobs.OverdueMarkInterval)
	})
	g.Go(func() error {
		log.InfoContext(gctx, "starting carepath server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.ErrorContext(ctx, "server exited", "error", err)
		return err
	}
	log.InfoContext(ctx, "server stopped")
	return nil
}

// poolChecker adapts a pgx pool to the health checker interface.
type poolChecker struct {
	pool *pgxpool.Pool
}

func (c poolChecker) Health(ctx context.Context) error {
	return c.pool.Ping(ctx)
}
