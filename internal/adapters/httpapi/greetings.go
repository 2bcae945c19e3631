package httpapi

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/andrescamacho/greeter-go/internal/application/greeting/commands"
	"github.com/andrescamacho/greeter-go/internal/application/greeting/queries"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// GreetRequest is the body of a greeting request
type GreetRequest struct {
	Name string `json:"name"`
}

// GreetingRoutes registers HTTP routes for greeting operations. Request
// validation happens inside the dispatch pipeline, so the handlers here only
// parse input and translate dispatch errors to HTTP status codes.
//
// Routes:
//   - POST   /api/v1/greetings        : Greet a person and record the greeting.
//   - GET    /api/v1/greetings        : List recorded greetings, newest first.
//   - GET    /api/v1/greetings/stats  : Aggregate greeting counts per name.
//   - DELETE /api/v1/greetings        : Purge greetings older than a given age.
func GreetingRoutes(app *fiber.App, m mediator.Mediator) {
	v1 := app.Group("/api/v1")
	v1.Post("/greetings", Greet(m))
	v1.Get("/greetings", GetHistory(m))
	v1.Get("/greetings/stats", GetStats(m))
	v1.Delete("/greetings", PurgeHistory(m))
}

// Greet returns a Fiber handler that dispatches a greeting command.
// On success it returns the greeting message and its recorded ID as JSON.
func Greet(m mediator.Mediator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input GreetRequest
		if err := c.BodyParser(&input); err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		}

		response, err := m.Send(c.Context(), &commands.GreetCommand{Name: input.Name})
		if err != nil {
			log.Errorf("Failed to greet: %v", err)
			return DispatchErrorJSON(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Greeting delivered",
			Data:    response,
		})
	}
}

// GetHistory returns a Fiber handler that lists recorded greetings.
// Supports name, limit and offset query parameters.
func GetHistory(m mediator.Mediator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := &queries.GetHistoryQuery{
			Limit:  c.QueryInt("limit"),
			Offset: c.QueryInt("offset"),
		}
		if name := c.Query("name"); name != "" {
			query.Name = &name
		}

		response, err := m.Send(c.Context(), query)
		if err != nil {
			log.Errorf("Failed to query greeting history: %v", err)
			return DispatchErrorJSON(c, err)
		}

		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Greeting history",
			Data:    response,
		})
	}
}

// GetStats returns a Fiber handler for aggregate greeting statistics
func GetStats(m mediator.Mediator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		response, err := m.Send(c.Context(), &queries.GetStatsQuery{})
		if err != nil {
			log.Errorf("Failed to query greeting stats: %v", err)
			return DispatchErrorJSON(c, err)
		}

		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Greeting statistics",
			Data:    response,
		})
	}
}

// PurgeHistory returns a Fiber handler that deletes greetings older than the
// age given in the older_than query parameter (a Go duration string).
func PurgeHistory(m mediator.Mediator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Query("older_than")
		if raw == "" {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request", "older_than query parameter is required")
		}

		olderThan, err := time.ParseDuration(raw)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request", fmt.Sprintf("older_than must be a duration: %v", err))
		}

		if err := m.SendVoid(c.Context(), &commands.PurgeHistoryCommand{OlderThan: olderThan}); err != nil {
			log.Errorf("Failed to purge greeting history: %v", err)
			return DispatchErrorJSON(c, err)
		}

		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Greeting history purged",
		})
	}
}
