package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AuditTrailMetrics records the outcome of asynchronous audit log writes.
type AuditTrailMetrics struct {
	writes   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewAuditTrailMetrics registers the audit trail metrics on the provided registerer.
func NewAuditTrailMetrics(reg prometheus.Registerer) *AuditTrailMetrics {
	if reg == nil {
		return &AuditTrailMetrics{}
	}
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_trail_writes",
		Help: "Successful audit trail entry writes.",
	}, []string{"field"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_trail_failures",
		Help: "Failed audit trail entry writes.",
	}, []string{"field"})
	reg.MustRegister(writes, failures)
	return &AuditTrailMetrics{
		writes:   writes,
		failures: failures,
	}
}

// IncWrite increments the write counter for the named field.
func (a *AuditTrailMetrics) IncWrite(field string) {
	if a == nil || a.writes == nil {
		return
	}
	a.writes.WithLabelValues(normalizeLabel(field)).Inc()
}

// IncFailure increments the failure counter for the named field.
func (a *AuditTrailMetrics) IncFailure(field string) {
	if a == nil || a.failures == nil {
		return
	}
	a.failures.WithLabelValues(normalizeLabel(field)).Inc()
}

func normalizeLabel(field string) string {
	if field == "" {
		return "unknown"
	}
	return field
}
