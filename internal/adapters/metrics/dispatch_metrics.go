package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DispatchMetricsCollector handles all request dispatch metrics
type DispatchMetricsCollector struct {
	// Dispatch execution metrics
	dispatchDuration *prometheus.HistogramVec
	dispatchesTotal  *prometheus.CounterVec
}

// NewDispatchMetricsCollector creates a new dispatch metrics collector
func NewDispatchMetricsCollector() *DispatchMetricsCollector {
	return &DispatchMetricsCollector{
		// Dispatch duration histogram
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "dispatch_duration_seconds",
				Help:      "Request dispatch duration distribution",
				Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.0, 3.0, 5.0, 10.0, 30.0},
			},
			[]string{"request", "status"},
		),

		// Dispatch counter
		dispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "dispatches_total",
				Help:      "Total number of requests dispatched by type and status",
			},
			[]string{"request", "status"},
		),
	}
}

// Register registers all dispatch metrics with the Prometheus registry
func (c *DispatchMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.dispatchDuration,
		c.dispatchesTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordDispatch records one request dispatch
func (c *DispatchMetricsCollector) RecordDispatch(
	requestName string,
	duration float64,
	success bool,
) {
	status := "success"
	if !success {
		status = "error"
	}

	// Record duration
	c.dispatchDuration.WithLabelValues(requestName, status).Observe(duration)

	// Increment counter
	c.dispatchesTotal.WithLabelValues(requestName, status).Inc()
}
