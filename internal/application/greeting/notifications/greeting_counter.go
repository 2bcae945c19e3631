package notifications

import (
	"context"

	"github.com/andrescamacho/greeter-go/internal/adapters/metrics"
)

// GreetingCounterHandler updates greeting counters when a greeting happens
type GreetingCounterHandler struct{}

// NewGreetingCounterHandler creates a new GreetingCounterHandler
func NewGreetingCounterHandler() *GreetingCounterHandler {
	return &GreetingCounterHandler{}
}

// Handle records the greeting in the metrics collector
func (h *GreetingCounterHandler) Handle(ctx context.Context, notification *GreetedNotification) error {
	metrics.RecordGreeting(notification.Name)
	return nil
}
