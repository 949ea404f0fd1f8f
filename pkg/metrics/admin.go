package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AdminOpsMetrics records the outcome of admin user operations.
type AdminOpsMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewAdminOpsMetrics registers the admin operation metrics on the provided registerer.
func NewAdminOpsMetrics(reg prometheus.Registerer) *AdminOpsMetrics {
	if reg == nil {
		return &AdminOpsMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_op_duration_seconds",
		Help:    "Duration of admin user operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_op_success",
		Help: "Successful admin user operations.",
	}, []string{"op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_op_failure",
		Help: "Failed admin user operations.",
	}, []string{"op"})
	reg.MustRegister(duration, success, failure)
	return &AdminOpsMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *AdminOpsMetrics) ObserveDuration(op string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (m *AdminOpsMetrics) IncSuccess(op string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (m *AdminOpsMetrics) IncFailure(op string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
