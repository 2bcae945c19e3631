package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// TagValidator adapts go-playground struct tag validation to the dispatch
// validator contract. Register one per request type that carries validate tags.
type TagValidator[T mediator.Request] struct {
	validate *validator.Validate
}

// NewTagValidator creates a TagValidator for the given request type
func NewTagValidator[T mediator.Request]() *TagValidator[T] {
	return &TagValidator[T]{
		validate: validator.New(),
	}
}

// Validate runs struct tag validation and converts rule violations into
// field failures. Engine errors (malformed tags, non-struct values) are
// returned as errors, not failures.
func (v *TagValidator[T]) Validate(ctx context.Context, request T) ([]mediator.FieldFailure, error) {
	err := v.validate.StructCtx(ctx, request)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		failures := make([]mediator.FieldFailure, 0, len(validationErrs))
		for _, e := range validationErrs {
			failures = append(failures, mediator.FieldFailure{
				Field:   strings.ToLower(e.Field()),
				Message: messageForTag(e),
			})
		}
		return failures, nil
	}

	return nil, err
}

// messageForTag converts validator tags into readable messages
func messageForTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("failed %s validation (value: '%v')", e.Tag(), e.Value())
	}
}
