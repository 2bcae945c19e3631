package mediator

import (
	"context"
	"errors"
	"reflect"
	"sync"
)

// WithValidation returns a decorator that runs the validators registered for a
// request's exact type before dispatching it. Validators run concurrently and
// all are awaited; their failures are merged into a single ValidationError
// grouped by field, and a request with any failure never reaches the inner
// Sender. Request types with no validators dispatch untouched.
func WithValidation(registry *Registry) Decorator {
	return func(next Sender) Sender {
		return &validatingSender{next: next, registry: registry}
	}
}

type validatingSender struct {
	next     Sender
	registry *Registry
}

func (s *validatingSender) Send(ctx context.Context, request Request) (Response, error) {
	if err := s.validate(ctx, request); err != nil {
		return nil, err
	}
	return s.next.Send(ctx, request)
}

func (s *validatingSender) SendVoid(ctx context.Context, request Request) error {
	if err := s.validate(ctx, request); err != nil {
		return err
	}
	return s.next.SendVoid(ctx, request)
}

func (s *validatingSender) validate(ctx context.Context, request Request) error {
	if request == nil {
		// Let the inner dispatcher reject nil requests
		return nil
	}

	bindings := s.registry.validatorBindings(reflect.TypeOf(request))
	if len(bindings) == 0 {
		return nil
	}

	type outcome struct {
		failures []FieldFailure
		err      error
	}

	// Results are indexed by registration order so the merged failure list is
	// deterministic even though validators run concurrently.
	outcomes := make([]outcome, len(bindings))
	var wg sync.WaitGroup
	for i, binding := range bindings {
		wg.Add(1)
		go func(i int, binding validatorBinding) {
			defer wg.Done()
			failures, err := binding.validate(ctx, request)
			outcomes[i] = outcome{failures: failures, err: err}
		}(i, binding)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// Stop waiting; validators are expected to honor ctx and unwind
		return ctx.Err()
	}

	var failures []FieldFailure
	var errs []error
	for _, out := range outcomes {
		failures = append(failures, out.failures...)
		if out.err != nil {
			errs = append(errs, out.err)
		}
	}

	// A validator that could not run makes the validation outcome unknowable,
	// so infrastructure errors take precedence over collected failures.
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if len(failures) > 0 {
		return NewValidationError(failures)
	}
	return nil
}
