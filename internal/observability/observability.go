// Package observability exposes the Prometheus metrics that make per-source
// degradation visible to operators. The composer deliberately hides partial
// failures from callers, so these counters are the only place a dying
// provider shows up.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for ProviderRequests.
const (
	StatusOK          = "ok"
	StatusRateLimited = "rate_limited"
	StatusCircuitOpen = "circuit_open"
	StatusError       = "error"
)

var (
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_requests_total",
		Help: "Search calls per provider, by outcome.",
	}, []string{"source", "status"})

	ComposeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "compose_duration_seconds",
		Help:    "Duration of a full fan-out/merge/annotate pass.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	})

	DuplicatesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compose_duplicates_dropped_total",
		Help: "Jobs discarded because a same-fingerprint record won canonicalization.",
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "search_cache_lookups_total",
		Help: "Search cache lookups, by result.",
	}, []string{"result"})
)

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
