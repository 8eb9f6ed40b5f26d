package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for the visits-processed counter.
const (
	OutcomeUpdated   = "updated"
	OutcomeUnchanged = "unchanged"
	OutcomeSkipped   = "skipped"
)

type Metrics struct {
	VisitsProcessed *prometheus.CounterVec
	PagesFetched    prometheus.Counter
	ResolveFailures prometheus.Counter
	ResolveSeconds  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		VisitsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "reattribution_visits_processed_total",
			Help: "Total number of visits scanned, by outcome.",
		}, []string{"outcome"}),
		PagesFetched: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "reattribution_pages_fetched_total",
			Help: "Total number of visit pages fetched from the store.",
		}),
		ResolveFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "reattribution_resolver_errors_total",
			Help: "Total number of transport errors received from the location resolver.",
		}),
		ResolveSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reattribution_resolver_request_duration_seconds",
			Help:    "Duration of requests to the location resolver.",
			Buckets: prometheus.DefBuckets,
		}, []string{"resolver"}),
	}
}
