package modular

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Bootstrap outcomes recorded per module.
const (
	OutcomeEnabled          = "enabled"
	OutcomeNotReady         = "not_ready"
	OutcomeNotFound         = "not_found"
	OutcomeInvalidSignature = "invalid_signature"
	OutcomeError            = "error"
)

type Metrics struct {
	bootstraps *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics registers the module bootstrap collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		bootstraps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "havennow",
			Name:      "module_bootstrap_total",
			Help:      "Module bootstrap attempts by module and outcome.",
		}, []string{"module", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "havennow",
			Name:      "module_bootstrap_duration_seconds",
			Help:      "Time spent enabling a module.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"module"}),
	}
}

func (m *Metrics) observe(module, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.bootstraps.WithLabelValues(module, outcome).Inc()
	m.duration.WithLabelValues(module).Observe(d.Seconds())
}
