package bench

import (
	"strconv"

	"github.com/darkyzhou/rsbench/cmd/rsbench/entities"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder mirrors every measurement into a private Prometheus
// registry, which the Store later dumps in text format.
type MetricsRecorder struct {
	Registry *prometheus.Registry

	durations *prometheus.GaugeVec
	trials    *prometheus.CounterVec
}

func NewMetricsRecorder() *MetricsRecorder {
	recorder := &MetricsRecorder{
		Registry: prometheus.NewRegistry(),
		durations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "rsbench",
			Name:      "trial_duration_seconds",
			Help:      "Wall-clock time of the latest trial of a strategy at an input size.",
		}, []string{"scenario", "label", "size"}),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rsbench",
			Name:      "trials_total",
			Help:      "Number of completed trials.",
		}, []string{"scenario", "label"}),
	}

	recorder.Registry.MustRegister(recorder.durations, recorder.trials)
	return recorder
}

func (m *MetricsRecorder) Observe(scenario string, measurement entities.Measurement) {
	m.durations.WithLabelValues(scenario, measurement.Label, strconv.Itoa(measurement.Size)).Set(measurement.Seconds)
	m.trials.WithLabelValues(scenario, measurement.Label).Inc()
}
