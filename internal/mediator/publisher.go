package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// PublishStrategy is the notification failure policy
type PublishStrategy int

const (
	// PublishFailFast stops the fan-out at the first handler error and
	// propagates it. Handlers registered after the failing one do not run.
	PublishFailFast PublishStrategy = iota

	// PublishBestEffort invokes every handler regardless of failures and
	// returns the collected errors joined together.
	PublishBestEffort
)

// String returns the configuration name of the strategy
func (s PublishStrategy) String() string {
	switch s {
	case PublishFailFast:
		return "fail_fast"
	case PublishBestEffort:
		return "best_effort"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ParsePublishStrategy parses a configuration value into a PublishStrategy
func ParsePublishStrategy(value string) (PublishStrategy, error) {
	switch value {
	case "fail_fast", "":
		return PublishFailFast, nil
	case "best_effort":
		return PublishBestEffort, nil
	default:
		return PublishFailFast, fmt.Errorf("invalid publish strategy: %q", value)
	}
}

// Publish fans a notification out to every handler bound to its exact type,
// in registration order. A type with no handlers is a no-op, not an error.
// Resolution failures count as handler failures under either strategy.
func (d *dispatcher) Publish(ctx context.Context, notification Notification) error {
	if notification == nil {
		return fmt.Errorf("notification cannot be nil")
	}

	bindings := d.registry.notificationBindings(reflect.TypeOf(notification))
	if len(bindings) == 0 {
		return nil
	}

	if d.strategy == PublishBestEffort {
		var errs []error
		for _, binding := range bindings {
			if err := binding.invoke(ctx, notification); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	for _, binding := range bindings {
		if err := binding.invoke(ctx, notification); err != nil {
			return err
		}
	}
	return nil
}
