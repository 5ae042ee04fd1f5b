package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/prompt-refiner-api/internal/dto"
	"github.com/noah-isme/prompt-refiner-api/internal/service"
	"github.com/noah-isme/prompt-refiner-api/internal/utils"
)

// PromptHandler serves prompt validation and refinement.
type PromptHandler struct {
	validator service.PromptValidator
	refiner   service.RefineService
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewPromptHandler constructs a prompt handler.
func NewPromptHandler(promptValidator service.PromptValidator, refiner service.RefineService, validate *validator.Validate, logger zerolog.Logger) *PromptHandler {
	return &PromptHandler{
		validator: promptValidator,
		refiner:   refiner,
		validate:  validate,
		logger:    logger.With().Str("component", "prompt_handler").Logger(),
	}
}

// Register wires prompt routes.
func (h *PromptHandler) Register(router fiber.Router) {
	router.Post("/validate-prompt", h.validatePrompt)
	router.Post("/refine-prompt", h.refinePrompt)
}

func (h *PromptHandler) validatePrompt(c *fiber.Ctx) error {
	var payload dto.ValidatePromptRequest
	if err := bindBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	fillString(&payload.Prompt, c, "prompt")

	if err := h.validate.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusUnprocessableEntity, validationMessage(err))
	}

	return utils.SendResult(c, h.validator.Validate(*payload.Prompt))
}

func (h *PromptHandler) refinePrompt(c *fiber.Ctx) error {
	var payload dto.RefinePromptRequest
	if err := bindBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	fillString(&payload.UserPrompt, c, "user_prompt")

	if err := h.validate.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusUnprocessableEntity, validationMessage(err))
	}

	response := h.refiner.Refine(c.UserContext(), *payload.UserPrompt)
	if response.ProcessingStatus != dto.StatusCompleted {
		requestLogger(h.logger, c).Warn().
			Str("status", string(response.ProcessingStatus)).
			Msg("prompt not refined")
	}

	return utils.SendResult(c, response)
}
