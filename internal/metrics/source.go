package metrics

import "github.com/prometheus/client_golang/prometheus"

// Source fetch Prometheus metrics.
var (
	SourceFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mizan",
			Name:      "source_fetches_total",
			Help:      "Total number of source fetch attempts",
		},
		[]string{"source", "status"},
	)

	SourceFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mizan",
			Name:      "source_fetch_duration_seconds",
			Help:      "Source fetch duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	SourceCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mizan",
			Name:      "source_candidates",
			Help:      "Number of candidates returned per source fetch",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 30, 50},
		},
		[]string{"source"},
	)
)

var sourceMetricsRegistered bool

// RegisterSourceMetrics registers Prometheus source metrics. Must be called once from main.
func RegisterSourceMetrics() {
	if sourceMetricsRegistered {
		return
	}
	prometheus.MustRegister(SourceFetchesTotal)
	prometheus.MustRegister(SourceFetchDuration)
	prometheus.MustRegister(SourceCandidates)
	sourceMetricsRegistered = true
}
