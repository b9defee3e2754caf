package workplan

import "github.com/prometheus/client_golang/prometheus"

// Metrics tracks planning activity as Prometheus counters. A nil Metrics
// disables collection.
type Metrics struct {
	schedulesComputed prometheus.Counter
	estimateCacheHits *prometheus.CounterVec
	oracleFallbacks   prometheus.Counter
}

// NewMetrics creates and registers planning metrics with the given registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		schedulesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workplan",
			Name:      "schedules_computed_total",
			Help:      "Total schedule computations",
		}),
		estimateCacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workplan",
			Name:      "estimate_cache_requests_total",
			Help:      "Estimate cache lookups, by result",
		}, []string{"result"}),
		oracleFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workplan",
			Name:      "oracle_fallbacks_total",
			Help:      "Multiplier oracle failures absorbed with the neutral multiplier",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.schedulesComputed, m.estimateCacheHits, m.oracleFallbacks)
	}
	return m
}

func (m *Metrics) scheduleComputed() {
	if m != nil {
		m.schedulesComputed.Inc()
	}
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.estimateCacheHits.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) cacheMiss() {
	if m != nil {
		m.estimateCacheHits.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) oracleFallback() {
	if m != nil {
		m.oracleFallbacks.Inc()
	}
}
