package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/DiabolusGX/snack-track/internal/notifier"
)

// Metrics exposes poll cycle and dispatch counters. A nil *Metrics is a
// no-op, which keeps tests free of registry bookkeeping.
type Metrics struct {
	cycles        *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewMetrics registers the tracker collectors on the default registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "snacktrack"
	}
	return &Metrics{
		cycles: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tracker",
				Name:      "cycles_total",
				Help:      "Poll cycles by result.",
			},
			[]string{"result"},
		),
		notifications: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tracker",
				Name:      "notifications_total",
				Help:      "Dispatched order notifications by kind and delivery outcome.",
			},
			[]string{"kind", "outcome"},
		),
	}
}

// CycleFinished counts one completed cycle.
func (m *Metrics) CycleFinished(result string) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(result).Inc()
}

// EventDispatched counts one dispatched event.
func (m *Metrics) EventDispatched(out notifier.Outcome) {
	if m == nil {
		return
	}
	outcome := "failed"
	if out.Delivered {
		outcome = "delivered"
	}
	m.notifications.WithLabelValues(string(out.Event.Kind), outcome).Inc()
}
