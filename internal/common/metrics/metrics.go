// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TaskCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_tasks_completed_total",
			Help: "Total number of pipeline tasks completed",
		},
		[]string{"task_type"},
	)

	TaskFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_tasks_failed_total",
			Help: "Total number of pipeline tasks failed",
		},
		[]string{"task_type", "error_code"},
	)

	TaskRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_task_retries_total",
			Help: "Total number of retry attempts per task",
		},
		[]string{"task_type"},
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_task_duration_seconds",
			Help: "Duration of task processing in seconds",
		},
		[]string{"task_type"},
	)

	RowsAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_rows_appended_total",
			Help: "Total number of rows appended to the work queue",
		},
	)

	FlowRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_flow_runs_total",
			Help: "Total number of flow invocations by outcome",
		},
		[]string{"outcome"},
	)
)
