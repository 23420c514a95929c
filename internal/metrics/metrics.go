package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Observer is the process wide metrics collector.
var Observer = NewMetrics(prometheus.DefaultRegisterer)

// Metrics records the quality of the trained maps.
type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
	last       map[string]Quality
}

// Quality is the set of scores for a single trained map.
type Quality struct {
	QError    float64
	TError    float64
	Occupancy float64
	CError    float64
}

// NewMetrics creates the collectors and registers them with the given registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutex:      new(sync.RWMutex),
		prometheus: NewPrometheusMetrics(),
		last:       make(map[string]Quality),
	}
	if registerer != nil {
		registerer.MustRegister(m.prometheus.collectors()...)
	}
	return m
}

// Observe records the quality of the latest map of the given run.
func (m *Metrics) Observe(run string, q Quality) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.prometheus.QuantizationError.WithLabelValues(run).Set(q.QError)
	m.prometheus.TopographicError.WithLabelValues(run).Set(q.TError)
	m.prometheus.Occupancy.WithLabelValues(run).Set(q.Occupancy)
	m.prometheus.ClassificationError.WithLabelValues(run).Set(q.CError)
	m.prometheus.Attempts.WithLabelValues(run).Inc()
	m.last[run] = q
}

// Last returns the latest observed quality of the run.
func (m *Metrics) Last(run string) (Quality, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	q, ok := m.last[run]
	return q, ok
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
