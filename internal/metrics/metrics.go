package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup results
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_console_http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "event_console_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_console_cache_lookups_total",
			Help: "Response cache lookups by entry kind and result",
		},
		[]string{"kind", "result"},
	)

	cacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_console_cache_invalidations_total",
			Help: "Event cache invalidations after mutations",
		},
	)

	apiRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_console_api_retries_total",
			Help: "Retried reads against the events API",
		},
		[]string{"path"},
	)
)

// ObserveRequest records one served HTTP request
func ObserveRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// CacheLookup records a cache lookup for kind (list, detail, venues, organizers)
func CacheLookup(kind, result string) {
	cacheLookups.WithLabelValues(kind, result).Inc()
}

// CacheInvalidated records one invalidation
func CacheInvalidated() {
	cacheInvalidations.Inc()
}

// APIRetry records a retried read. path should be a route template, not a
// concrete URL, to bound cardinality.
func APIRetry(path string) {
	apiRetries.WithLabelValues(path).Inc()
}
