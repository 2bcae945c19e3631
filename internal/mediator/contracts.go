package mediator

import (
	"context"
)

// Request represents a command or query
type Request interface{}

// Response represents the result of handling a request
type Response interface{}

// Notification represents an event fact fanned out to zero or more handlers
type Notification interface{}

// RequestHandler handles a specific request type and produces a result
type RequestHandler[T Request, R Response] interface {
	Handle(ctx context.Context, request T) (R, error)
}

// RequestHandlerFunc adapts a function to the RequestHandler interface
type RequestHandlerFunc[T Request, R Response] func(ctx context.Context, request T) (R, error)

func (f RequestHandlerFunc[T, R]) Handle(ctx context.Context, request T) (R, error) {
	return f(ctx, request)
}

// VoidHandler handles a specific request type that produces no result
type VoidHandler[T Request] interface {
	Handle(ctx context.Context, request T) error
}

// VoidHandlerFunc adapts a function to the VoidHandler interface
type VoidHandlerFunc[T Request] func(ctx context.Context, request T) error

func (f VoidHandlerFunc[T]) Handle(ctx context.Context, request T) error {
	return f(ctx, request)
}

// NotificationHandler reacts to a published notification
type NotificationHandler[T Notification] interface {
	Handle(ctx context.Context, notification T) error
}

// NotificationHandlerFunc adapts a function to the NotificationHandler interface
type NotificationHandlerFunc[T Notification] func(ctx context.Context, notification T) error

func (f NotificationHandlerFunc[T]) Handle(ctx context.Context, notification T) error {
	return f(ctx, notification)
}

// FieldFailure is a single validation failure attributed to a request field
type FieldFailure struct {
	Field   string
	Message string
}

// Validator checks a request before it reaches its handler.
// Returned failures mean the request is invalid; a non-nil error means the
// validator itself could not run and is reported separately from failures.
type Validator[T Request] interface {
	Validate(ctx context.Context, request T) ([]FieldFailure, error)
}

// ValidatorFunc adapts a function to the Validator interface
type ValidatorFunc[T Request] func(ctx context.Context, request T) ([]FieldFailure, error)

func (f ValidatorFunc[T]) Validate(ctx context.Context, request T) ([]FieldFailure, error) {
	return f(ctx, request)
}

// Sender dispatches requests to their registered handlers
type Sender interface {
	// Send dispatches a result-producing request to its handler
	Send(ctx context.Context, request Request) (Response, error)

	// SendVoid dispatches a request and discards any result
	SendVoid(ctx context.Context, request Request) error
}

// Publisher fans notifications out to their registered handlers
type Publisher interface {
	Publish(ctx context.Context, notification Notification) error
}

// Mediator combines request dispatch and notification publishing
type Mediator interface {
	Sender
	Publisher
}

// Logger is the sink for dispatch instrumentation.
// Implementations must be safe for concurrent use and must not block.
type Logger interface {
	Log(level, message string, fields map[string]interface{})
}
