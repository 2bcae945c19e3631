package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/andrescamacho/greeter-go/internal/infrastructure/config"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// NewApp builds the Fiber application serving the greeting API.
// All request handling goes through the composed dispatch pipeline, so
// validation and logging behave the same over HTTP as they do in the CLI.
// A nil server config keeps Fiber's defaults.
func NewApp(m mediator.Mediator, cfg *config.ServerConfig) *fiber.App {
	fiberCfg := fiber.Config{
		AppName: "greeter",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default to 500 if status code cannot be determined
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	}
	if cfg != nil {
		fiberCfg.ReadTimeout = cfg.ReadTimeout
		fiberCfg.WriteTimeout = cfg.WriteTimeout
	}

	app := fiber.New(fiberCfg)

	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	GreetingRoutes(app, m)

	return app
}
