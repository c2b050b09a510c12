package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ayemen27/siteledger/internal/adapter/http/handler"
	"github.com/ayemen27/siteledger/internal/adapter/http/middleware"
	"github.com/ayemen27/siteledger/internal/infrastructure/metrics"
	"github.com/ayemen27/siteledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	FinancialHandler *handler.FinancialHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	// Gatherer backs /metrics. Defaults to the Prometheus default registry.
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1/financials", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		h := cfg.FinancialHandler

		r.Route("/projects", func(r chi.Router) {
			r.Get("/stats", h.ProjectsStats)
			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/summary", h.ProjectSummary)
				r.Get("/daily/{date}", h.DailySummary)
				r.Post("/daily/{date}/snapshot", h.PersistSnapshot)
				r.Get("/snapshots", h.ListSnapshots)
			})
		})

		r.Get("/daily/{date}/total", h.DailyTotal)
	})

	return r
}
