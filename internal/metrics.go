package internal

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultVerified = "verified"
	resultRejected = "rejected"
	resultInvalid  = "invalid"
)

// Metrics counts sealed requests and received notifications.
type Metrics struct {
	registry      *prometheus.Registry
	requests      prometheus.Counter
	notifications *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "omnikassa",
			Name:      "requests_sealed_total",
			Help:      "Payment requests built and sealed.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "omnikassa",
			Name:      "notifications_total",
			Help:      "Payment notifications by verification result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.requests, m.notifications)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) requestSealed() {
	m.requests.Inc()
}

func (m *Metrics) notification(result string) {
	m.notifications.WithLabelValues(result).Inc()
}
