package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry is the dedicated registry exposed on /api/metrics. Using our
	// own registry keeps the endpoint free of default-collector noise.
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Custom histogram buckets optimized for API response times from
	// milliseconds up to slow datastore round trips.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Datastore Client Metrics
	DatastoreRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DatastoreRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	EntitySearches = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rma_entity_searches_total",
			Help: "Total number of reviewable-entity search queries",
		},
		[]string{"entity_type", "outcome"}, // "hit", "miss", "short_query", "error"
	)

	ReviewSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rma_review_submissions_total",
			Help: "Total number of review submission attempts",
		},
		[]string{"entity_type", "status"},
	)

	ReviewDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rma_review_submission_duration_seconds",
			Help:    "Review submission duration in seconds",
			Buckets: CustomAPIBuckets,
		},
	)

	HoneypotTrips = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rma_honeypot_trips_total",
			Help: "Total number of submissions silently dropped by the honeypot",
		},
		[]string{"form"},
	)

	RecaptchaVerifications = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rma_recaptcha_verifications_total",
			Help: "Total number of reCAPTCHA verification attempts",
		},
		[]string{"outcome"}, // "passed", "rejected", "unavailable"
	)

	EntitiesCreated = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rma_entities_created_total",
			Help: "Total number of reviewable entities implicitly created by reviewers",
		},
		[]string{"entity_type"},
	)

	InquirySubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rma_inquiry_submissions_total",
			Help: "Total number of contact form submissions",
		},
		[]string{"status"},
	)

	ProfileViews = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rma_profile_views_total",
			Help: "Total number of profile fetches",
		},
		[]string{"entity_type"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
