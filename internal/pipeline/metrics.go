package pipeline

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeSuccess      = "success"
	outcomeTransport    = "transport_error"
	outcomeInvalidShape = "invalid_shape"
)

// Metrics counts strategy attempts.
type Metrics struct {
	attempts *prometheus.CounterVec
}

// NewMetrics registers the pipeline collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "testgen",
			Subsystem: "pipeline",
			Name:      "attempts_total",
			Help:      "Generation strategy attempts by action, strategy and outcome.",
		}, []string{"action", "strategy", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.attempts)
	}
	return m
}

func (m *Metrics) observe(action Action, strategy, outcome string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(string(action), strategy, outcome).Inc()
}
