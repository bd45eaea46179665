package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_processed_total",
			Help: "Total number of documents run through field extraction",
		},
		[]string{"doc_type"},
	)

	ExtractionEmpty = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_empty_total",
			Help: "Documents whose extraction produced no fields at all",
		},
		[]string{"doc_type"},
	)

	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifications_total",
			Help: "Verification runs by final status",
		},
		[]string{"status"},
	)

	VerificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "verification_duration_seconds",
			Help: "End-to-end duration of one applicant verification",
		},
	)
)
