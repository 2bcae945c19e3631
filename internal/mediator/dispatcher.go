package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// dispatcher is the base Mediator implementation over a frozen registry.
// It performs the exact-type lookup and nothing else; cross-cutting behavior
// lives in decorators composed around it.
type dispatcher struct {
	registry *Registry
	strategy PublishStrategy
}

// Option configures the base dispatcher
type Option func(*dispatcher)

// WithPublishStrategy selects the notification failure policy.
// The default is PublishFailFast.
func WithPublishStrategy(strategy PublishStrategy) Option {
	return func(d *dispatcher) {
		d.strategy = strategy
	}
}

// New creates the base Mediator dispatching over the given registry
func New(registry *Registry, opts ...Option) Mediator {
	d := &dispatcher{
		registry: registry,
		strategy: PublishFailFast,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send dispatches a request to the handler bound to its exact concrete type.
// The lookup is a single map access: no interface matching, no type ancestry.
// Handler errors are returned unchanged so callers can inspect domain errors
// without unwrapping dispatch machinery.
func (d *dispatcher) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	requestType := reflect.TypeOf(request)
	binding, ok := d.registry.requestBinding(requestType)
	if !ok {
		return nil, fmt.Errorf("%w for type %s", ErrHandlerNotFound, requestType)
	}

	return binding.invoke(ctx, request)
}

// SendVoid dispatches a request and discards any result it produces
func (d *dispatcher) SendVoid(ctx context.Context, request Request) error {
	_, err := d.Send(ctx, request)
	return err
}

// Send dispatches a request through s and asserts the result to R.
// A result of the wrong dynamic type is a wiring mistake and is reported as an
// error rather than a panic.
func Send[R Response](ctx context.Context, s Sender, request Request) (R, error) {
	var zero R

	result, err := s.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}

	typed, ok := result.(R)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T for request %T", result, request)
	}
	return typed, nil
}

// RequestName extracts a short display name from a request or notification.
// "*commands.GreetCommand" becomes "GreetCommand".
func RequestName(request interface{}) string {
	if request == nil {
		return "UnknownRequest"
	}
	return shortTypeName(reflect.TypeOf(request))
}

func shortTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
