// Package metrics holds the Prometheus collectors of the SnapTube backend.
// Collectors exist from package init so code paths can record without a
// registry; Register exposes them.
package metrics

import (
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snaptube_reactions_total",
			Help: "Reaction writes, by target kind and transition (create, update, delete).",
		},
		[]string{"kind", "transition"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snaptube_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "snaptube_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	AnnotateBatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snaptube_engagement_batch_size",
			Help:    "Number of content items annotated per engagement lookup.",
			Buckets: []float64{1, 5, 10, 20, 50, 100},
		},
	)

	OwnerLookupFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "snaptube_owner_lookup_failures_total",
			Help: "Owner profile lookups that failed and left items without owners.",
		},
	)

	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snaptube_rate_limited_total",
			Help: "Requests rejected by a rate limiter, by limiter name.",
		},
		[]string{"limiter"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more than once.
func Register(pool *pgxpool.Pool) {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ReactionsTotal,
			RequestDuration,
			RequestsInFlight,
			AnnotateBatchSize,
			OwnerLookupFailures,
			RateLimited,
		)

		// DB pool gauges read live stats from pgxpool
		if pool != nil {
			prometheus.MustRegister(
				prometheus.NewGaugeFunc(
					prometheus.GaugeOpts{
						Name: "snaptube_db_connection_pool_active",
						Help: "Number of active database connections.",
					},
					func() float64 { return float64(pool.Stat().AcquiredConns()) },
				),
				prometheus.NewGaugeFunc(
					prometheus.GaugeOpts{
						Name: "snaptube_db_connection_pool_idle",
						Help: "Number of idle database connections.",
					},
					func() float64 { return float64(pool.Stat().IdleConns()) },
				),
			)
		}
	})
}
