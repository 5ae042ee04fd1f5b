package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/prompt-refiner-api/internal/config"
	"github.com/noah-isme/prompt-refiner-api/internal/handler"
	"github.com/noah-isme/prompt-refiner-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	PromptHandler   *handler.PromptHandler
	FeedbackHandler *handler.FeedbackHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// The operation routes live at the root.
	if deps.PromptHandler != nil {
		deps.PromptHandler.Register(app)
	}

	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(app)
	}
}
