package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// GreetingMetricsCollector handles greeting delivery metrics
type GreetingMetricsCollector struct {
	greetingsTotal *prometheus.CounterVec
}

// NewGreetingMetricsCollector creates a new greeting metrics collector
func NewGreetingMetricsCollector() *GreetingMetricsCollector {
	return &GreetingMetricsCollector{
		greetingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "greetings_total",
				Help:      "Total number of greetings delivered by recipient name",
			},
			[]string{"name"},
		),
	}
}

// Register registers all greeting metrics with the Prometheus registry
func (c *GreetingMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	return Registry.Register(c.greetingsTotal)
}

// RecordGreeting records one delivered greeting
func (c *GreetingMetricsCollector) RecordGreeting(name string) {
	c.greetingsTotal.WithLabelValues(name).Inc()
}
