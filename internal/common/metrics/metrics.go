// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// CompatScores counts scored pairs by the method that produced the score.
	CompatScores = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compat_scores_total",
			Help: "Compatibility scores computed, by scoring method",
		},
		[]string{"method"},
	)

	VenueSearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "venue_search_results",
			Help:    "Venues returned per search after the rating filter",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	VenueSearchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_search_failures_total",
			Help: "Venue searches that degraded to an empty result",
		},
		[]string{"reason"},
	)

	PlansGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plans_generated_total",
			Help: "Ready plans generated, by time window mode",
		},
		[]string{"window_mode"},
	)
)
