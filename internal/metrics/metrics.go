// Package metrics registers the Prometheus collectors exported by the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "placement_readiness"

var (
	AnalysesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_saved_total",
		Help:      "Analyses written to history",
	})

	EntriesRepaired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_entries_repaired_total",
		Help:      "Persisted entries rebuilt after failing validation",
	})

	EntriesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_entries_dropped_total",
		Help:      "Persisted entries that could not be repaired",
	})

	ConfidenceUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confidence_updates_total",
		Help:      "Skill confidence changes applied to entries",
	})

	StorageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_failures_total",
		Help:      "Failed storage operations",
	}, []string{"operation"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status_code"})

	HTTPDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Name: "http_request_duration_seconds",
		Help: "HTTP request duration in seconds",
		Objectives: map[float64]float64{
			0.5:  0.05,
			0.9:  0.01,
			0.99: 0.001,
		},
	}, []string{"method", "path", "status_code"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
