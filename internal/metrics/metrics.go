// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "occdash_refresh_total",
		Help: "Completed refresh cycles by outcome.",
	}, []string{"outcome"})

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "occdash_refresh_duration_seconds",
		Help:    "Wall time of a full snapshot fetch.",
		Buckets: prometheus.DefBuckets,
	})

	snapshotOccurrences = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "occdash_snapshot_occurrences",
		Help: "Occurrences in the current snapshot.",
	})

	snapshotLocations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "occdash_snapshot_locations",
		Help: "Locations in the current snapshot.",
	})

	activeUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "occdash_active_users",
		Help: "Active users reported by the last snapshot.",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "occdash_http_requests_total",
		Help: "HTTP requests by path and status.",
	}, []string{"path", "status"})
)

// RefreshDone records one finished refresh cycle.
func RefreshDone(outcome string, took time.Duration) {
	refreshTotal.WithLabelValues(outcome).Inc()
	refreshDuration.Observe(took.Seconds())
}

// SnapshotSizes records the gauges for the snapshot just installed.
func SnapshotSizes(occurrences, locations, users int) {
	snapshotOccurrences.Set(float64(occurrences))
	snapshotLocations.Set(float64(locations))
	activeUsers.Set(float64(users))
}

// HTTPRequest counts one served request.
func HTTPRequest(path, status string) {
	httpRequests.WithLabelValues(path, status).Inc()
}
