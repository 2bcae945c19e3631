package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/andrescamacho/greeter-go/internal/domain/greeting"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details
func ErrorResponseJSON(
	c *fiber.Ctx,
	status int,
	title string,
	detail any,
) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// DispatchErrorJSON translates a dispatch pipeline error into an HTTP response.
// Validation failures carry their per-field message grouping in the body.
func DispatchErrorJSON(c *fiber.Ctx, err error) error {
	var validationErr *mediator.ValidationError
	if errors.As(err, &validationErr) {
		return ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", validationErr.Failures())
	}

	var notFound *greeting.ErrGreetingNotFound
	if errors.As(err, &notFound) {
		return ErrorResponseJSON(c, fiber.StatusNotFound, "Not Found", err.Error())
	}

	// Missing or unresolvable handlers are wiring faults, not client errors
	return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Dispatch failed", err.Error())
}
