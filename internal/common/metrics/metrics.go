// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_submissions_received_total",
			Help: "Total number of submissions handed to the pipeline",
		},
	)

	SubmissionsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_submissions_accepted_total",
			Help: "Total number of submissions that passed validation",
		},
	)

	SubmissionsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_submissions_rejected_total",
			Help: "Total number of submissions rejected by validation",
		},
	)

	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_stage_failures_total",
			Help: "Total number of stage failures by stage and error code",
		},
		[]string{"stage", "error_code"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intake_stage_duration_seconds",
			Help: "Duration of pipeline stage processing in seconds",
		},
		[]string{"stage"},
	)

	DocumentsStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_documents_stored_total",
			Help: "Total number of applicant documents written to storage",
		},
	)
)
