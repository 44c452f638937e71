// Package metrics exposes Prometheus counters for registry operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SignupsTotal     prometheus.Counter
	UnregistersTotal prometheus.Counter
	RejectionsTotal  *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		SignupsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mergington_activity_signups_total",
			Help: "Total number of successful activity signups",
		}),
		UnregistersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mergington_activity_unregisters_total",
			Help: "Total number of successful activity unregistrations",
		}),
		RejectionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mergington_activity_rejections_total",
			Help: "Total number of rejected registry mutations by reason",
		}, []string{"reason"}),
	}
}

func (m *Metrics) IncrementSignups() {
	if m == nil {
		return
	}
	m.SignupsTotal.Inc()
}

func (m *Metrics) IncrementUnregisters() {
	if m == nil {
		return
	}
	m.UnregistersTotal.Inc()
}

func (m *Metrics) IncrementRejections(reason string) {
	if m == nil {
		return
	}
	m.RejectionsTotal.WithLabelValues(reason).Inc()
}
