// Package metrics exposes Prometheus collectors for the pricing engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//nolint:gochecknoglobals // Prometheus collectors are process-wide singletons
var (
	// CacheHits counts pricing cache hits.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "costcompass",
		Subsystem: "pricing",
		Name:      "cache_hits_total",
		Help:      "Number of quotation cache hits.",
	})

	// CacheMisses counts pricing cache misses.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "costcompass",
		Subsystem: "pricing",
		Name:      "cache_misses_total",
		Help:      "Number of quotation cache misses.",
	})

	// LiveLookupFailures counts live pricing lookups that returned no usable
	// price, per provider.
	LiveLookupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "costcompass",
		Subsystem: "pricing",
		Name:      "live_lookup_failures_total",
		Help:      "Number of live pricing lookups that collapsed to unavailable.",
	}, []string{"provider"})

	// StaticFallbacks counts category calculations served from the static
	// rate card after live pricing was unavailable.
	StaticFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "costcompass",
		Subsystem: "pricing",
		Name:      "static_fallbacks_total",
		Help:      "Number of category prices served from the static table.",
	}, []string{"provider", "category"})

	// LiveLookupDuration observes live pricing lookup latency per provider.
	LiveLookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "costcompass",
		Subsystem: "pricing",
		Name:      "live_lookup_duration_seconds",
		Help:      "Latency of live pricing API lookups.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
