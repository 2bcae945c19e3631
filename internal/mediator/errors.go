package mediator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrHandlerNotFound is returned by Send and SendVoid when no handler is
	// bound to the request's exact type
	ErrHandlerNotFound = errors.New("no handler registered")

	// ErrHandlerResolutionFailed is returned when a handler factory fails to
	// produce a handler for a bound request or notification type
	ErrHandlerResolutionFailed = errors.New("handler resolution failed")

	// ErrDuplicateHandler is returned when a second handler is registered for
	// a request type that already has one
	ErrDuplicateHandler = errors.New("handler already registered")
)

// ValidationError reports request validation failures grouped by field.
// It is returned by the validation decorator before the handler is invoked,
// so a request that fails validation never reaches its handler.
type ValidationError struct {
	failures map[string][]string
	fields   []string // first-seen field order
}

// NewValidationError groups the given failures by field, preserving both the
// order fields first appear and the order of messages within a field.
func NewValidationError(failures []FieldFailure) *ValidationError {
	e := &ValidationError{failures: make(map[string][]string)}
	for _, f := range failures {
		if _, seen := e.failures[f.Field]; !seen {
			e.fields = append(e.fields, f.Field)
		}
		e.failures[f.Field] = append(e.failures[f.Field], f.Message)
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for _, field := range e.fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.failures[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the failed field names in first-seen order
func (e *ValidationError) Fields() []string {
	return append([]string{}, e.fields...)
}

// Failures returns a copy of the field to messages mapping
func (e *ValidationError) Failures() map[string][]string {
	out := make(map[string][]string, len(e.failures))
	for field, messages := range e.failures {
		out[field] = append([]string{}, messages...)
	}
	return out
}

// Messages returns the failure messages recorded for a field
func (e *ValidationError) Messages(field string) []string {
	return append([]string{}, e.failures[field]...)
}
