package boardroom

import "github.com/prometheus/client_golang/prometheus"

// Metrics tracks meeting activity as Prometheus counters. All fields are
// optional on the orchestrator; a nil Metrics disables collection.
type Metrics struct {
	turnsTotal       prometheus.Counter
	oracleFallbacks  *prometheus.CounterVec
	meetingsFinished *prometheus.CounterVec
}

// NewMetrics creates and registers meeting metrics with the given registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		turnsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "boardroom",
			Name:      "turns_total",
			Help:      "Total number of meeting turns taken",
		}),
		oracleFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "boardroom",
			Name:      "oracle_fallbacks_total",
			Help:      "Oracle failures absorbed with a local fallback, by call",
		}, []string{"call"}),
		meetingsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "boardroom",
			Name:      "meetings_finished_total",
			Help:      "Meetings reaching a terminal outcome, by resolution",
		}, []string{"resolution"}),
	}
	if reg != nil {
		reg.MustRegister(m.turnsTotal, m.oracleFallbacks, m.meetingsFinished)
	}
	return m
}

func (m *Metrics) turnTaken() {
	if m != nil {
		m.turnsTotal.Inc()
	}
}

func (m *Metrics) oracleFallback(call string) {
	if m != nil {
		m.oracleFallbacks.WithLabelValues(call).Inc()
	}
}

func (m *Metrics) meetingFinished(resolution string) {
	if m != nil {
		m.meetingsFinished.WithLabelValues(resolution).Inc()
	}
}
