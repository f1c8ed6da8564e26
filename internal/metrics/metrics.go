// Package metrics registers the domain collectors exposed alongside
// the HTTP metrics on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snipframe",
		Name:      "exports_total",
		Help:      "Export jobs by format and terminal status.",
	}, []string{"format", "status"})

	exportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "snipframe",
		Name:      "export_duration_seconds",
		Help:      "Time from admission to terminal state.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"format"})

	jobsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "snipframe",
		Name:      "jobs_active",
		Help:      "Jobs currently queued or processing.",
	})

	sweepRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snipframe",
		Name:      "sweep_removed_total",
		Help:      "Entries removed by background sweeps, by subsystem.",
	}, []string{"subsystem"})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "snipframe",
		Name:      "rate_limited_total",
		Help:      "Requests denied by the rate limiter.",
	})
)

// ExportFinished records a job reaching a terminal state.
func ExportFinished(format, status string, elapsed time.Duration) {
	exportsTotal.WithLabelValues(format, status).Inc()
	exportDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// SetActiveJobs publishes the current queued+processing count.
func SetActiveJobs(n int) {
	jobsActive.Set(float64(n))
}

// SweepRemoved records entries removed by a named sweep.
func SweepRemoved(subsystem string, n int) {
	if n > 0 {
		sweepRemoved.WithLabelValues(subsystem).Add(float64(n))
	}
}

// RateLimited records one denied request.
func RateLimited() {
	rateLimited.Inc()
}
