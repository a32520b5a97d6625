package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// EngagementEvents counts engagement mutations by kind (like, unlike,
	// comment, share).
	EngagementEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_engagement_events_total",
		Help: "Total number of engagement events by kind",
	}, []string{"kind"})

	// PostLifecycleEvents counts post lifecycle mutations by kind (create,
	// update, publish, unpublish, delete).
	PostLifecycleEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_post_lifecycle_events_total",
		Help: "Total number of post lifecycle events by kind",
	}, []string{"kind"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
