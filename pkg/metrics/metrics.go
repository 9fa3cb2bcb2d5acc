// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "noobgg_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "noobgg_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "noobgg_list_cache_lookups_total",
		Help: "List cache lookups by backend and result (hit, miss, error)",
	}, []string{"backend", "result"})

	CacheInvalidationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "noobgg_list_cache_invalidation_failures_total",
		Help: "Prefix invalidations that failed and were deferred, by backend",
	}, []string{"backend"})

	VersionConflicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "noobgg_row_version_conflicts_total",
		Help: "Updates rejected because the supplied row version was stale",
	}, []string{"resource"})

	UpdateRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "noobgg_unconditional_update_retries_total",
		Help: "Re-reads performed by updates that carried no row version",
	}, []string{"resource"})

	BreakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "noobgg_circuit_breaker_state",
		Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
	}, []string{"name"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequests, HTTPDuration,
		CacheLookups, CacheInvalidationFailures,
		VersionConflicts, UpdateRetries,
		BreakerState,
	)
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
