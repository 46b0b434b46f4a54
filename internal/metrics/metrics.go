// Package metrics provides Prometheus instrumentation for the import
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Flow labels distinguish the two import flows on every metric.
const (
	FlowSchedule    = "schedule"
	FlowParticipant = "participant"
)

// ImportMetrics tracks row outcomes and durations per import flow. A nil
// receiver is a no-op so instrumentation stays optional in tests.
type ImportMetrics struct {
	rowsProcessed  *prometheus.CounterVec
	rowsSucceeded  *prometheus.CounterVec
	rowsFailed     *prometheus.CounterVec
	importDuration *prometheus.HistogramVec
}

// New registers the import metrics on the given registerer.
func New(reg prometheus.Registerer) *ImportMetrics {
	auto := promauto.With(reg)
	return &ImportMetrics{
		rowsProcessed: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interviewd",
			Subsystem: "import",
			Name:      "rows_processed_total",
			Help:      "Total non-blank rows handled by the import pipeline",
		}, []string{"flow"}),
		rowsSucceeded: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interviewd",
			Subsystem: "import",
			Name:      "rows_succeeded_total",
			Help:      "Total rows persisted successfully",
		}, []string{"flow"}),
		rowsFailed: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interviewd",
			Subsystem: "import",
			Name:      "rows_failed_total",
			Help:      "Total rows rejected with a row-level error",
		}, []string{"flow"}),
		importDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "interviewd",
			Subsystem: "import",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of one import run",
			Buckets:   prometheus.DefBuckets,
		}, []string{"flow"}),
	}
}

// ObserveRun records the outcome of one import run.
func (m *ImportMetrics) ObserveRun(flow string, processed, succeeded, failed int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rowsProcessed.WithLabelValues(flow).Add(float64(processed))
	m.rowsSucceeded.WithLabelValues(flow).Add(float64(succeeded))
	m.rowsFailed.WithLabelValues(flow).Add(float64(failed))
	m.importDuration.WithLabelValues(flow).Observe(elapsed.Seconds())
}
