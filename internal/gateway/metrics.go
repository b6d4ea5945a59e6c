package gateway

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts remote writes and table loads.
type Metrics struct {
	writes     *prometheus.CounterVec
	loads      *prometheus.CounterVec
	queueDepth prometheus.Gauge
	dropped    prometheus.Counter
}

// NewMetrics registers the gateway collectors with reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "house",
			Subsystem: "sync",
			Name:      "writes_total",
			Help:      "Remote writes by table, action and result.",
		}, []string{"table", "action", "result"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "house",
			Subsystem: "sync",
			Name:      "loads_total",
			Help:      "Table loads by table and result.",
		}, []string{"table", "result"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "house",
			Subsystem: "sync",
			Name:      "queue_depth",
			Help:      "Writes waiting for the sync worker.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "house",
			Subsystem: "sync",
			Name:      "dropped_total",
			Help:      "Writes dropped because the queue was full or closed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.writes, m.loads, m.queueDepth, m.dropped)
	}
	return m
}
