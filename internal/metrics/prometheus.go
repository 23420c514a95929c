package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "som"

// Prometheus holds the collectors for the map quality of a search.
type Prometheus struct {
	QuantizationError   *prometheus.GaugeVec
	TopographicError    *prometheus.GaugeVec
	Occupancy           *prometheus.GaugeVec
	ClassificationError *prometheus.GaugeVec
	Attempts            *prometheus.CounterVec
}

func gauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, []string{"run"})
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		QuantizationError:   gauge("quantization_error", "average distance of the inputs to their winning node"),
		TopographicError:    gauge("topographic_error", "fraction of inputs with non adjacent best matching nodes"),
		Occupancy:           gauge("occupancy", "fraction of nodes that won at least one input"),
		ClassificationError: gauge("classification_error", "fraction of misclassified test samples"),
		Attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attempts",
				Help:      "number of trained maps",
			}, []string{"run"}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.QuantizationError,
		p.TopographicError,
		p.Occupancy,
		p.ClassificationError,
		p.Attempts,
	}
}
