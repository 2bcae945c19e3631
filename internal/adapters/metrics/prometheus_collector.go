package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "greeter"
	// Subsystem for daemon metrics
	subsystem = "daemon"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalGreetingCollector is the singleton greeting metrics collector
	// Set by SetGlobalGreetingCollector() when metrics are enabled
	globalGreetingCollector GreetingMetricsRecorder
)

// GreetingMetricsRecorder defines the interface for recording greeting events
// This interface is used by application code to record metrics
type GreetingMetricsRecorder interface {
	RecordGreeting(name string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalGreetingCollector sets the global greeting metrics collector
// This should be called after the collector is created and registered
func SetGlobalGreetingCollector(collector GreetingMetricsRecorder) {
	globalGreetingCollector = collector
}

// RecordGreeting records a delivered greeting globally
func RecordGreeting(name string) {
	if globalGreetingCollector != nil {
		globalGreetingCollector.RecordGreeting(name)
	}
}
