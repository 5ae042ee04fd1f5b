package utils

import "github.com/gofiber/fiber/v2"

// APIResponse describes the envelope used by auxiliary endpoints such as health.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// ErrorResponse is the body returned for rejected or failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendSuccess sends a successful enveloped JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendResult writes an operation result as the bare JSON body with status 200.
func SendResult(c *fiber.Ctx, result interface{}) error {
	return c.Status(fiber.StatusOK).JSON(result)
}

// SendError sends {"error": message} with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}
