package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/prompt-refiner-api/internal/dto"
	"github.com/noah-isme/prompt-refiner-api/internal/service"
	"github.com/noah-isme/prompt-refiner-api/internal/utils"
)

// FeedbackHandler accepts ratings for refined prompts.
type FeedbackHandler struct {
	service  service.FeedbackService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewFeedbackHandler constructs a feedback handler.
func NewFeedbackHandler(service service.FeedbackService, validate *validator.Validate, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register wires feedback routes.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Post("/submit-feedback", h.submit)
}

func (h *FeedbackHandler) submit(c *fiber.Ctx) error {
	var payload dto.SubmitFeedbackRequest
	if err := bindBody(c, &payload); err != nil {
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	fillString(&payload.UserID, c, "user_id")
	fillString(&payload.PromptID, c, "prompt_id")
	fillString(&payload.Comments, c, "comments")
	if payload.Rating == nil {
		rating, err := queryInt(c, "rating")
		if err != nil {
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "rating must be an integer")
		}
		payload.Rating = rating
	}

	if err := h.validate.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusUnprocessableEntity, validationMessage(err))
	}

	response, err := h.service.Submit(c.UserContext(), *payload.UserID, *payload.PromptID, *payload.Rating, payload.Comments)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to process feedback submission")
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SendResult(c, response)
}
