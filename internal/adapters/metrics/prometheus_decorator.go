package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// PrometheusDecorator creates a dispatch decorator that records execution metrics
//
// The decorator wraps all request dispatch and records:
// - Dispatch duration (histogram)
// - Success/failure counts (counter)
//
// Request names are derived from the concrete request type without its
// package prefix. For example: "*commands.GreetCommand" becomes "GreetCommand"
func PrometheusDecorator(collector *DispatchMetricsCollector) mediator.Decorator {
	return func(next mediator.Sender) mediator.Sender {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next
		}
		return &instrumentedSender{collector: collector, next: next}
	}
}

type instrumentedSender struct {
	collector *DispatchMetricsCollector
	next      mediator.Sender
}

func (s *instrumentedSender) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	start := time.Now()

	response, err := s.next.Send(ctx, request)

	duration := time.Since(start).Seconds()
	s.collector.RecordDispatch(mediator.RequestName(request), duration, err == nil)

	return response, err
}

func (s *instrumentedSender) SendVoid(ctx context.Context, request mediator.Request) error {
	start := time.Now()

	err := s.next.SendVoid(ctx, request)

	duration := time.Since(start).Seconds()
	s.collector.RecordDispatch(mediator.RequestName(request), duration, err == nil)

	return err
}
