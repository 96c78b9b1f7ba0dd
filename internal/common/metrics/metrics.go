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

	PipelineStageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_pipeline_stage_failures_total",
			Help: "Pipeline failures by stage (load, score, rank, persist)",
		},
		[]string{"stage"},
	)

	EnrichmentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_enrichment_total",
			Help: "Description enrichment outcomes (generated, fallback)",
		},
		[]string{"outcome"},
	)

	RecommendationsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_written_total",
			Help: "Total recommendation rows written to storage",
		},
	)
)
