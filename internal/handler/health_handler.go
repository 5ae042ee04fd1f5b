package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/prompt-refiner-api/internal/config"
	"github.com/noah-isme/prompt-refiner-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Service      string    `json:"service"`
	Environment  string    `json:"environment"`
	Model        string    `json:"model"`
	RefinerReady bool      `json:"refiner_ready"`
}

// HealthCheck returns a handler that reports application health information.
// refiner_ready is false when no OpenAI API key is configured; the service still runs.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:       "ok",
			Timestamp:    time.Now().UTC(),
			Service:      cfg.AppName,
			Environment:  cfg.AppEnv,
			Model:        cfg.OpenAIModel,
			RefinerReady: cfg.OpenAIAPIKey != "",
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
