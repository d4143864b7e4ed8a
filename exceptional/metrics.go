package exceptional

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Metrics records compositions by result and the size of the composite type
// cache. A nil *Metrics records nothing.
type Metrics struct {
	compositions *prometheus.CounterVec
	declarations prometheus.Counter
	types        prometheus.Gauge
}

func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		compositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "exceptional",
			Name:      "compositions_total",
			Help:      "Compositions by result: cache hit, cache miss or error",
		}, []string{"result"}),
		declarations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exceptional",
			Name:      "interface_declarations_total",
			Help:      "Interfaces declared while synthesizing composite types",
		}),
		types: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "exceptional",
			Name:      "composite_types",
			Help:      "Composite types in the cache",
		}),
	}
	for _, collector := range []prometheus.Collector{metrics.compositions, metrics.declarations, metrics.types} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return metrics, nil
}

func (m *Metrics) composed(result string) {
	if m == nil {
		return
	}
	m.compositions.WithLabelValues(result).Inc()
}

func (m *Metrics) declared(count int) {
	if m == nil || count == 0 {
		return
	}
	m.declarations.Add(float64(count))
}

func (m *Metrics) synthesized() {
	if m == nil {
		return
	}
	m.types.Inc()
}
