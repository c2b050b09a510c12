package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	httpAdapter "github.com/ayemen27/siteledger/internal/adapter/http"
	"github.com/ayemen27/siteledger/internal/adapter/http/handler"
	"github.com/ayemen27/siteledger/internal/adapter/http/middleware"
	postgresRepo "github.com/ayemen27/siteledger/internal/adapter/repository/postgres"
	redisRepo "github.com/ayemen27/siteledger/internal/adapter/repository/redis"
	"github.com/ayemen27/siteledger/internal/infrastructure/config"
	"github.com/ayemen27/siteledger/internal/infrastructure/eventpublisher"
	"github.com/ayemen27/siteledger/internal/infrastructure/logger"
	"github.com/ayemen27/siteledger/internal/infrastructure/metrics"
	"github.com/ayemen27/siteledger/internal/infrastructure/postgres"
	"github.com/ayemen27/siteledger/internal/infrastructure/redis"
	"github.com/ayemen27/siteledger/internal/infrastructure/scheduler"
	"github.com/ayemen27/siteledger/internal/usecase"
)

const (
	poolStatsInterval        = 15 * time.Second
	rateLimitCleanupInterval = time.Minute
	rateLimitMaxIdle         = 10 * time.Minute
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	location, err := time.LoadLocation(cfg.SnapshotTimezone)
	if err != nil {
		return fmt.Errorf("load snapshot timezone: %w", err)
	}

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return err
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClientWithConfig(ctx, redis.ClientConfig{
		URL:      cfg.RedisURL,
		PoolSize: cfg.RedisPoolSize,
	})
	if err != nil {
		return err
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	sourceRepo := postgresRepo.NewSourceRepository(pool, postgresRepo.NewRetrier(log), m)
	snapshotCache := redisRepo.NewSnapshotCache(redisClient, postgresRepo.NewSnapshotRepository(pool), cfg.SnapshotCacheTTL, log, m)
	projectRepo := postgresRepo.NewProjectRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Event publishing
	publisher, closePublisher, err := newEventPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	events := eventpublisher.NewEventPublisher(eventpublisher.Config{
		Publisher: publisher,
		Logger:    log,
	})
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	publisherDone := make(chan struct{})
	go func() {
		defer close(publisherDone)
		_ = events.Start(publisherCtx)
	}()

	// Initialize use cases
	opts := []usecase.Option{
		usecase.WithEventPublisher(events),
		usecase.WithRollupConcurrency(cfg.RollupConcurrency),
	}
	if cfg.StalenessCheck {
		opts = append(opts, usecase.WithStalenessChecker(postgresRepo.NewChangeDetector(pool)))
	}
	financialUC := usecase.NewFinancialUseCase(
		projectRepo,
		snapshotCache,
		sourceRepo.Sources(),
		postgresRepo.NewULIDGenerator(),
		log,
		m,
		opts...,
	)

	// Nightly snapshots
	sched := scheduler.New(ctx, location, cfg.SnapshotTimeout, log)
	if cfg.SnapshotJobEnabled {
		job := usecase.NewSnapshotJob(financialUC, redisRepo.NewJobLock(redisClient), location, log, m)
		if err := sched.Add("daily-snapshots", cfg.SnapshotCron, job.Run); err != nil {
			return err
		}
	}
	sched.Start()

	go reportPoolStats(ctx, pool, m)

	rateLimiter := newRateLimiter(cfg, m)
	if rateLimiter != nil {
		go cleanupVisitors(ctx, rateLimiter, log)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		FinancialHandler: handler.NewFinancialHandler(financialUC),
		HealthHandler: handler.NewHealthHandler(
			handler.PostgresCheck(pool),
			handler.RedisCheck(redisClient),
		),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Metrics:          m,
		Gatherer:         prometheus.DefaultGatherer,
		Logger:           log,
	})

	server := newHTTPServer(cfg, router)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	sched.Stop(shutdownCtx)

	stopPublisher()
	select {
	case <-publisherDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("event publisher did not drain before shutdown deadline")
	}

	log.Info().Msg("server stopped")
	return nil
}

// newEventPublisher returns the AMQP publisher when AMQP_URL is set and a
// logging publisher otherwise.
func newEventPublisher(cfg *config.Config, log zerolog.Logger) (eventpublisher.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		return eventpublisher.NewLogPublisher(log), func() {}, nil
	}

	p, err := eventpublisher.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("exchange", cfg.AMQPExchange).Msg("connected to amqp")

	return p, func() {
		if err := p.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close amqp connection")
		}
	}, nil
}

func newRateLimiter(cfg *config.Config, m *metrics.Metrics) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithMetrics(m)
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

func cleanupVisitors(ctx context.Context, rl *middleware.RateLimiter, log zerolog.Logger) {
	ticker := time.NewTicker(rateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Cleanup(rateLimitMaxIdle); n > 0 {
				log.Debug().Int("removed", n).Msg("rate limiter visitors cleaned up")
			}
		}
	}
}

func reportPoolStats(ctx context.Context, pool *pgxpool.Pool, m *metrics.Metrics) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()

	for {
		m.DBConnections.Set(float64(pool.Stat().TotalConns()))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
