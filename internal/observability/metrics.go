package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialfeed_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheLookups counts cache-aside lookups by key family and result (hit or miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialfeed_cache_lookups_total",
		Help: "Cache-aside lookups by key family and result",
	}, []string{"family", "result"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "socialfeed_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CounterAdjustments counts denormalized counter changes by column and direction.
	CounterAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialfeed_counter_adjustments_total",
		Help: "Denormalized post counter adjustments by counter and direction",
	}, []string{"counter", "direction"})

	// CounterClamped counts decrements that found the counter already at zero.
	CounterClamped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialfeed_counter_clamped_total",
		Help: "Decrements of a post counter that was already zero",
	}, []string{"counter"})

	// LikeToggles counts like toggles by outcome.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialfeed_like_toggles_total",
		Help: "Like toggles by outcome",
	}, []string{"outcome"})
)

// DatabaseMetrics records query latency for a repository.
type DatabaseMetrics struct {
	table string
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance for table.
func NewDatabaseMetrics(table string) *DatabaseMetrics {
	return &DatabaseMetrics{table: table}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, m.table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, start)
	}
}
