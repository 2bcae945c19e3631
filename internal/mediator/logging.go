package mediator

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/greeter-go/pkg/utils"
)

// NopLogger returns a Logger that discards everything.
// Used as the fallback when no logger is configured.
func NopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Log(level, message string, fields map[string]interface{}) {}

// WithLogging returns a decorator that records the start and outcome of every
// dispatch. Each dispatch gets a short id correlating its start and finish
// records. The finish record carries the elapsed wall-clock duration and is
// emitted on failure too; the error itself passes through unchanged.
func WithLogging(logger Logger) Decorator {
	if logger == nil {
		logger = NopLogger()
	}
	return func(next Sender) Sender {
		return &loggingSender{next: next, logger: logger}
	}
}

type loggingSender struct {
	next   Sender
	logger Logger
}

func (s *loggingSender) Send(ctx context.Context, request Request) (Response, error) {
	name := RequestName(request)
	dispatchID := utils.GenerateDispatchID(name)

	s.logger.Log("INFO", fmt.Sprintf("dispatching %s", name), map[string]interface{}{
		"request_type": name,
		"dispatch_id":  dispatchID,
		"request":      fmt.Sprintf("%+v", request),
	})

	start := time.Now()
	response, err := s.next.Send(ctx, request)
	duration := time.Since(start)

	if err != nil {
		s.logger.Log("ERROR", fmt.Sprintf("%s failed", name), map[string]interface{}{
			"request_type": name,
			"dispatch_id":  dispatchID,
			"duration_ms":  duration.Milliseconds(),
			"error":        err.Error(),
		})
		return response, err
	}

	s.logger.Log("INFO", fmt.Sprintf("%s completed", name), map[string]interface{}{
		"request_type": name,
		"dispatch_id":  dispatchID,
		"duration_ms":  duration.Milliseconds(),
	})
	return response, nil
}

func (s *loggingSender) SendVoid(ctx context.Context, request Request) error {
	name := RequestName(request)
	dispatchID := utils.GenerateDispatchID(name)

	s.logger.Log("INFO", fmt.Sprintf("dispatching %s", name), map[string]interface{}{
		"request_type": name,
		"dispatch_id":  dispatchID,
		"request":      fmt.Sprintf("%+v", request),
	})

	start := time.Now()
	err := s.next.SendVoid(ctx, request)
	duration := time.Since(start)

	if err != nil {
		s.logger.Log("ERROR", fmt.Sprintf("%s failed", name), map[string]interface{}{
			"request_type": name,
			"dispatch_id":  dispatchID,
			"duration_ms":  duration.Milliseconds(),
			"error":        err.Error(),
		})
		return err
	}

	s.logger.Log("INFO", fmt.Sprintf("%s completed", name), map[string]interface{}{
		"request_type": name,
		"dispatch_id":  dispatchID,
		"duration_ms":  duration.Milliseconds(),
	})
	return nil
}
