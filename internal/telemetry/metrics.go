// Package telemetry exposes prometheus collectors for the registry, the
// entity pools and the subscription ledgers. A nil *Metrics records nothing.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "flyweight"

// Metrics groups the collectors shared by all components.
type Metrics struct {
	lookups     *prometheus.CounterVec
	entities    prometheus.Gauge
	dispatches  *prometheus.CounterVec
	invocations *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intrinsic_lookups_total",
			Help:      "Intrinsic record lookups by result (hit or miss).",
		}, []string{"result"}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Entity handles currently held by pools.",
		}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_total",
			Help:      "Dispatches per channel.",
		}, []string{"channel"}),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listener_invocations_total",
			Help:      "Listener invocations per channel.",
		}, []string{"channel"}),
	}

	for _, c := range []prometheus.Collector{m.lookups, m.entities, m.dispatches, m.invocations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Lookup records an intrinsic lookup.
func (m *Metrics) Lookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.WithLabelValues(result).Inc()
}

// EntityAdded increments the live entity gauge.
func (m *Metrics) EntityAdded() {
	if m == nil {
		return
	}
	m.entities.Inc()
}

// EntityRemoved decrements the live entity gauge.
func (m *Metrics) EntityRemoved() {
	if m == nil {
		return
	}
	m.entities.Dec()
}

// Dispatched records one dispatch that reached n listeners.
func (m *Metrics) Dispatched(channel string, n int) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(channel).Inc()
	m.invocations.WithLabelValues(channel).Add(float64(n))
}
