// Package metrics exposes Prometheus instrumentation for gearcheck.
//
// A nil *Metrics is valid and records nothing, so packages can take one
// as an optional dependency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gearcheck"

// Metrics holds the collectors registered for one process.
type Metrics struct {
	loads       *prometheus.CounterVec
	fallbacks   prometheus.Counter
	saves       *prometheus.CounterVec
	regressions prometheus.Counter
	rpcDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_loads_total",
			Help:      "Table load attempts by backend and result.",
		}, []string{"backend", "result"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_fallbacks_total",
			Help:      "Loads or saves served by the local file after the remote backend failed.",
		}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_saves_total",
			Help:      "Table write attempts by backend and result.",
		}, []string{"backend", "result"}),
		regressions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "item_regressions_total",
			Help:      "Items saved as absent after previously being held.",
		}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling time by procedure and code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}
	reg.MustRegister(m.loads, m.fallbacks, m.saves, m.regressions, m.rpcDuration)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveLoad counts one load attempt.
func (m *Metrics) ObserveLoad(backend string, err error) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(backend, result(err)).Inc()
}

// ObserveSave counts one write attempt.
func (m *Metrics) ObserveSave(backend string, err error) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(backend, result(err)).Inc()
}

// Fallback counts one switch to the local backend.
func (m *Metrics) Fallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

// Regressions adds n regressed items.
func (m *Metrics) Regressions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.regressions.Add(float64(n))
}

// ObserveRPC records how long a procedure took.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}
