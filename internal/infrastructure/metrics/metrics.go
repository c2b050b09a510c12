package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	AggregationsTotal   *prometheus.CounterVec
	AggregationDuration *prometheus.HistogramVec
	AggregationErrors   *prometheus.CounterVec
	SanitizedValues     *prometheus.CounterVec
	CarriedForward      *prometheus.CounterVec
	SourceReadDuration  *prometheus.HistogramVec

	// Snapshot metrics
	SnapshotsPersisted   prometheus.Counter
	SnapshotsInvalidated *prometheus.CounterVec
	SnapshotJobRuns      *prometheus.CounterVec
	SnapshotCacheHits    *prometheus.CounterVec
	EventsPublished      *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBErrors      *prometheus.CounterVec
	DBConnections prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates and registers all Prometheus metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		// Ledger metrics
		AggregationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_aggregations_total",
				Help: "Total period aggregations by filter kind",
			},
			[]string{"filter"},
		),
		AggregationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "siteledger_aggregation_duration_seconds",
				Help:    "Duration of period aggregations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"filter"},
		),
		AggregationErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_aggregation_errors_total",
				Help: "Total failed aggregations by stage",
			},
			[]string{"stage"},
		),
		SanitizedValues: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_sanitized_values_total",
				Help: "Raw values coerced to zero by the numeric sanitizer",
			},
			[]string{"reason"},
		),
		CarriedForward: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_carried_forward_total",
				Help: "Carried-forward balance resolutions by path",
			},
			[]string{"path"},
		),
		SourceReadDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "siteledger_source_read_duration_seconds",
				Help:    "Duration of transaction source reads",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),

		// Snapshot metrics
		SnapshotsPersisted: f.NewCounter(prometheus.CounterOpts{
			Name: "siteledger_snapshots_persisted_total",
			Help: "Total daily snapshots written",
		}),
		SnapshotsInvalidated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_snapshots_invalidated_total",
				Help: "Total snapshot invalidations by cause",
			},
			[]string{"cause"},
		),
		SnapshotJobRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_snapshot_job_runs_total",
				Help: "Scheduled snapshot job runs by outcome",
			},
			[]string{"outcome"},
		),
		SnapshotCacheHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_snapshot_cache_total",
				Help: "Snapshot cache lookups by result",
			},
			[]string{"result"},
		),
		EventsPublished: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_events_published_total",
				Help: "Published events by type and status",
			},
			[]string{"event_type", "status"},
		),

		// API metrics
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "siteledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
		DBConnections: f.NewGauge(prometheus.GaugeOpts{
			Name: "siteledger_db_connections",
			Help: "Current number of database connections",
		}),

		// Rate limiting metrics
		RateLimitHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
