package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of the start endpoint.
type Metrics struct {
	startRequests    *prometheus.CounterVec
	startDuration    prometheus.Histogram
	templateFailures prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		startRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gamehost",
				Name:      "start_requests_total",
				Help:      "Total number of start requests by result",
			},
			[]string{"result"},
		),
		startDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "gamehost",
				Name:      "start_duration_seconds",
				Help:      "Duration of start requests in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 7), // 500ms to 32s
			},
		),
		templateFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "gamehost",
				Name:      "template_failures_total",
				Help:      "Total number of requests answered without a page because the template was unavailable",
			},
		),
	}
	reg.MustRegister(m.startRequests, m.startDuration, m.templateFailures)
	return m
}

func (m *Metrics) recordStart(result string, seconds float64) {
	m.startRequests.WithLabelValues(result).Inc()
	m.startDuration.Observe(seconds)
}

func (m *Metrics) recordTemplateFailure() {
	m.templateFailures.Inc()
}
