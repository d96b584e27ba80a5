package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sz10101/vym/pkg/script"
)

// Metrics records façade calls as Prometheus metrics.
type Metrics struct {
	calls    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vym_script_calls_total",
				Help: "Total number of script operation calls",
			},
			[]string{"facade", "op"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vym_script_errors_total",
				Help: "Total number of errors raised into scripts",
			},
			[]string{"facade", "op", "kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vym_script_call_duration_seconds",
				Help:    "Duration of script operation calls",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"facade", "op"},
		),
	}
	for _, c := range []prometheus.Collector{m.calls, m.errors, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveCall implements script.Observer.
func (m *Metrics) ObserveCall(ev script.CallEvent) {
	m.calls.WithLabelValues(ev.Facade, ev.Op).Inc()
	m.duration.WithLabelValues(ev.Facade, ev.Op).Observe(ev.Duration.Seconds())
	for _, e := range ev.Errors {
		m.errors.WithLabelValues(ev.Facade, ev.Op, e.Kind.String()).Inc()
	}
}
