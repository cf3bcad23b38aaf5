package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestAuditTrailMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewAuditTrailMetrics(reg)
	metrics.IncWrite("condition")
	metrics.IncWrite("condition")
	metrics.IncFailure("assigned_to")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "audit_trail_writes", "field", "condition"); err != nil {
		t.Fatalf("fetch writes: %v", err)
	} else if got != 2 {
		t.Fatalf("expected writes=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "audit_trail_failures", "field", "assigned_to"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}
}

func TestAuditTrailMetricsNilReceiverIsSafe(t *testing.T) {
	var metrics *AuditTrailMetrics
	metrics.IncWrite("condition")
	metrics.IncFailure("condition")

	empty := NewAuditTrailMetrics(nil)
	empty.IncWrite("")
	empty.IncFailure("")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
