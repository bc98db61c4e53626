package metrics

import "github.com/prometheus/client_golang/prometheus"

// Verification pipeline Prometheus metrics.
var (
	VerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimlens",
			Name:      "verifications_total",
			Help:      "Total number of verification runs",
		},
		[]string{"input_type", "verdict"},
	)

	VerificationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "claimlens",
			Name:      "verification_duration_seconds",
			Help:      "End-to-end verification run duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"input_type"},
	)

	VerificationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimlens",
			Name:      "verification_errors_total",
			Help:      "Total verification runs that failed",
		},
		[]string{"input_type", "error_type"}, // "invalid_input" / "upstream" / "other"
	)

	EvidenceQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimlens",
			Name:      "evidence_queries_total",
			Help:      "Total evidence provider queries",
		},
		[]string{"provider", "status"}, // "ok" / "error"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers Prometheus pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(VerificationsTotal)
	prometheus.MustRegister(VerificationDuration)
	prometheus.MustRegister(VerificationErrorsTotal)
	prometheus.MustRegister(EvidenceQueriesTotal)
	pipelineMetricsRegistered = true
}
