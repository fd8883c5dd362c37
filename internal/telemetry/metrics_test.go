package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Record(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Lookup(false)
	m.Lookup(true)
	m.Lookup(true)
	m.EntityAdded()
	m.EntityAdded()
	m.EntityRemoved()
	m.Dispatched("boot", 3)

	if got := testutil.ToFloat64(m.lookups.WithLabelValues("hit")); got != 2 {
		t.Errorf("expected 2 hits, got %v", got)
	}
	if got := testutil.ToFloat64(m.lookups.WithLabelValues("miss")); got != 1 {
		t.Errorf("expected 1 miss, got %v", got)
	}
	if got := testutil.ToFloat64(m.entities); got != 1 {
		t.Errorf("expected 1 live entity, got %v", got)
	}
	if got := testutil.ToFloat64(m.invocations.WithLabelValues("boot")); got != 3 {
		t.Errorf("expected 3 invocations, got %v", got)
	}
}

func TestMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := New(reg); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.Lookup(true)
	m.EntityAdded()
	m.EntityRemoved()
	m.Dispatched("x", 1)
}
