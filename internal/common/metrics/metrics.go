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
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.DefBuckets,
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
)

// Engine metrics
var (
	IntentClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_classifications_total",
			Help: "Classified queries by resulting intent",
		},
		[]string{"intent"},
	)

	AdviceResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advice_responses_total",
			Help: "Advice responses by intent and text source",
		},
		[]string{"intent", "source"},
	)

	SimulationsRun = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulations_run_total",
			Help: "Simulation runs by type and outcome",
		},
		[]string{"simulation_type", "status"},
	)

	GenerativeFallbackFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generative_fallback_failures_total",
			Help: "Generative enhancement attempts that degraded to rule-based text",
		},
		[]string{"provider"},
	)

	ProfileCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_cache_lookups_total",
			Help: "Profile cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)
