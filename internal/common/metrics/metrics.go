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

	TopicSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topic_searches_total",
			Help: "Topic searches by outcome (hit, miss, blank, error, superseded)",
		},
		[]string{"outcome"},
	)

	CommunityResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_resolutions_total",
			Help: "Community resolutions by outcome (direct, ai, empty, error, superseded)",
		},
		[]string{"outcome"},
	)

	SuggestionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_failures_total",
			Help: "Generator failures swallowed by the resolution flow",
		},
		[]string{"reason"},
	)

	SuggestionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "suggestion_duration_seconds",
			Help:    "Duration of suggestion generator calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		},
		[]string{"provider", "status"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_cache_lookups_total",
			Help: "Store cache lookups by kind and result (hit, miss, error)",
		},
		[]string{"kind", "result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern and status code",
		},
		[]string{"route", "status"},
	)
)
