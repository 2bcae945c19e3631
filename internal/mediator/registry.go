package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// requestBinding invokes the handler bound to one request type.
// The strongly typed handle call is captured at registration time, so dispatch
// never needs reflection beyond the type lookup itself.
type requestBinding struct {
	invoke func(ctx context.Context, request Request) (Response, error)
}

// notificationBinding invokes one of the handlers bound to a notification type
type notificationBinding struct {
	invoke func(ctx context.Context, notification Notification) error
}

// validatorBinding invokes one of the validators bound to a request type
type validatorBinding struct {
	validate func(ctx context.Context, request Request) ([]FieldFailure, error)
}

// Builder collects handler and validator registrations before the registry is
// built. Registration is explicit: startup code binds each request type to its
// handler (or handler factory) through the typed Register functions. A request
// type can have exactly one handler; notification types and validators can
// have any number, kept in registration order.
//
// Builders are not safe for concurrent use. Call Build once when registration
// is complete.
type Builder struct {
	requests      map[reflect.Type]requestBinding
	notifications map[reflect.Type][]notificationBinding
	validators    map[reflect.Type][]validatorBinding
}

// NewBuilder creates an empty registration builder
func NewBuilder() *Builder {
	return &Builder{
		requests:      make(map[reflect.Type]requestBinding),
		notifications: make(map[reflect.Type][]notificationBinding),
		validators:    make(map[reflect.Type][]validatorBinding),
	}
}

// Registry is the frozen handler catalog produced by Builder.Build.
// It is immutable after construction and safe for concurrent reads without
// locking. Missing request types are not an error here; they fail at dispatch
// time with ErrHandlerNotFound.
type Registry struct {
	requests      map[reflect.Type]requestBinding
	notifications map[reflect.Type][]notificationBinding
	validators    map[reflect.Type][]validatorBinding
}

// Build freezes the collected registrations into a Registry.
// The registry holds copies, so later mutation of the builder does not leak
// into a mediator already built from it.
func (b *Builder) Build() *Registry {
	r := &Registry{
		requests:      make(map[reflect.Type]requestBinding, len(b.requests)),
		notifications: make(map[reflect.Type][]notificationBinding, len(b.notifications)),
		validators:    make(map[reflect.Type][]validatorBinding, len(b.validators)),
	}
	for t, binding := range b.requests {
		r.requests[t] = binding
	}
	for t, bindings := range b.notifications {
		r.notifications[t] = append([]notificationBinding{}, bindings...)
	}
	for t, bindings := range b.validators {
		r.validators[t] = append([]validatorBinding{}, bindings...)
	}
	return r
}

// RequestCount returns the number of request types with a bound handler
func (r *Registry) RequestCount() int {
	return len(r.requests)
}

// NotificationCount returns the number of notification types with at least one handler
func (r *Registry) NotificationCount() int {
	return len(r.notifications)
}

func (r *Registry) requestBinding(t reflect.Type) (requestBinding, bool) {
	binding, ok := r.requests[t]
	return binding, ok
}

func (r *Registry) notificationBindings(t reflect.Type) []notificationBinding {
	return r.notifications[t]
}

func (r *Registry) validatorBindings(t reflect.Type) []validatorBinding {
	return r.validators[t]
}

// RegisterRequestHandler binds a result-producing handler instance to request
// type T. The instance is wrapped in a constant factory, so instance and
// factory registrations dispatch identically.
func RegisterRequestHandler[T Request, R Response](b *Builder, handler RequestHandler[T, R]) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	return RegisterRequestHandlerFactory(b, func() (RequestHandler[T, R], error) {
		return handler, nil
	})
}

// RegisterRequestHandlerFactory binds a handler factory to request type T.
// The factory is called once per dispatch; a factory error surfaces as
// ErrHandlerResolutionFailed and the call is not retried.
func RegisterRequestHandlerFactory[T Request, R Response](b *Builder, factory func() (RequestHandler[T, R], error)) error {
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	requestType, err := typeOf[T]()
	if err != nil {
		return err
	}

	invoke := func(ctx context.Context, request Request) (Response, error) {
		typed, ok := request.(T)
		if !ok {
			return nil, fmt.Errorf("request type mismatch: bound %s, got %T", requestType, request)
		}
		handler, err := factory()
		if err != nil {
			return nil, fmt.Errorf("%w for type %s: %w", ErrHandlerResolutionFailed, requestType, err)
		}
		return handler.Handle(ctx, typed)
	}
	return b.bindRequest(requestType, requestBinding{invoke: invoke})
}

// RegisterVoidHandler binds a void handler instance to request type T
func RegisterVoidHandler[T Request](b *Builder, handler VoidHandler[T]) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	return RegisterVoidHandlerFactory(b, func() (VoidHandler[T], error) {
		return handler, nil
	})
}

// RegisterVoidHandlerFactory binds a void handler factory to request type T.
// Void bindings share the request catalog with result bindings, so a request
// type still has at most one handler regardless of flavor.
func RegisterVoidHandlerFactory[T Request](b *Builder, factory func() (VoidHandler[T], error)) error {
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	requestType, err := typeOf[T]()
	if err != nil {
		return err
	}

	invoke := func(ctx context.Context, request Request) (Response, error) {
		typed, ok := request.(T)
		if !ok {
			return nil, fmt.Errorf("request type mismatch: bound %s, got %T", requestType, request)
		}
		handler, err := factory()
		if err != nil {
			return nil, fmt.Errorf("%w for type %s: %w", ErrHandlerResolutionFailed, requestType, err)
		}
		return nil, handler.Handle(ctx, typed)
	}
	return b.bindRequest(requestType, requestBinding{invoke: invoke})
}

// RegisterNotificationHandler appends a notification handler instance for type T
func RegisterNotificationHandler[T Notification](b *Builder, handler NotificationHandler[T]) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	return RegisterNotificationHandlerFactory(b, func() (NotificationHandler[T], error) {
		return handler, nil
	})
}

// RegisterNotificationHandlerFactory appends a notification handler factory
// for type T. Unlike request handlers, a notification type accepts any number
// of handlers; Publish invokes them in registration order.
func RegisterNotificationHandlerFactory[T Notification](b *Builder, factory func() (NotificationHandler[T], error)) error {
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	notificationType, err := typeOf[T]()
	if err != nil {
		return err
	}

	invoke := func(ctx context.Context, notification Notification) error {
		typed, ok := notification.(T)
		if !ok {
			return fmt.Errorf("notification type mismatch: bound %s, got %T", notificationType, notification)
		}
		handler, err := factory()
		if err != nil {
			return fmt.Errorf("%w for type %s: %w", ErrHandlerResolutionFailed, notificationType, err)
		}
		return handler.Handle(ctx, typed)
	}
	b.notifications[notificationType] = append(b.notifications[notificationType], notificationBinding{invoke: invoke})
	return nil
}

// RegisterValidator appends a validator for request type T.
// Validators only run when the validation decorator is part of the chain.
func RegisterValidator[T Request](b *Builder, v Validator[T]) error {
	if v == nil {
		return fmt.Errorf("validator cannot be nil")
	}
	requestType, err := typeOf[T]()
	if err != nil {
		return err
	}

	validate := func(ctx context.Context, request Request) ([]FieldFailure, error) {
		typed, ok := request.(T)
		if !ok {
			return nil, fmt.Errorf("request type mismatch: bound %s, got %T", requestType, request)
		}
		return v.Validate(ctx, typed)
	}
	b.validators[requestType] = append(b.validators[requestType], validatorBinding{validate: validate})
	return nil
}

func (b *Builder) bindRequest(requestType reflect.Type, binding requestBinding) error {
	if _, exists := b.requests[requestType]; exists {
		return fmt.Errorf("%w for type %s", ErrDuplicateHandler, requestType)
	}
	b.requests[requestType] = binding
	return nil
}

// typeOf resolves the reflect.Type used as catalog key for T.
// Dispatch looks requests up by the concrete type of the value passed to Send,
// so T must be a concrete type (commands are registered as pointer types).
func typeOf[T any]() (reflect.Type, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// zero is a nil interface value; T is an interface type
		return nil, fmt.Errorf("cannot register interface type %s: register the concrete request type", reflect.TypeOf((*T)(nil)).Elem())
	}
	return t, nil
}
