package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/prompt-refiner-api/internal/dto"
	"github.com/noah-isme/prompt-refiner-api/internal/middleware"
	"github.com/noah-isme/prompt-refiner-api/internal/models"
	"github.com/noah-isme/prompt-refiner-api/internal/observability"
	"github.com/noah-isme/prompt-refiner-api/internal/repository"
)

const (
	minRating = 1
	maxRating = 5
)

const (
	msgFeedbackNotFound    = "User or prompt not found."
	msgFeedbackRatingRange = "Rating must be between 1 and 5."
	msgFeedbackSubmitted   = "Feedback submitted successfully."
	feedbackFailurePrefix  = "Failed to submit feedback: "
)

// FeedbackService records user ratings of refinements.
type FeedbackService interface {
	// Submit stores one feedback row when the user and prompt exist and the rating is in range.
	// Business failures are reported in the response; the error is reserved for lookup faults.
	Submit(ctx context.Context, userID, promptID string, rating int, comments *string) (dto.SubmitFeedbackResponse, error)
}

type feedbackService struct {
	users     repository.UserRepository
	prompts   repository.PromptRepository
	feedback  repository.FeedbackRepository
	publisher FeedbackPublisher
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewFeedbackService constructs a feedback service.
func NewFeedbackService(users repository.UserRepository, prompts repository.PromptRepository, feedback repository.FeedbackRepository, publisher FeedbackPublisher, logger zerolog.Logger) FeedbackService {
	if publisher == nil {
		publisher = NewLogFeedbackPublisher(logger)
	}

	return &feedbackService{
		users:     users,
		prompts:   prompts,
		feedback:  feedback,
		publisher: publisher,
		logger:    logger.With().Str("component", "feedback_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/prompt-refiner-api/internal/service/feedback"),
	}
}

func (s *feedbackService) Submit(ctx context.Context, userID, promptID string, rating int, comments *string) (dto.SubmitFeedbackResponse, error) {
	ctx, span := s.tracer.Start(ctx, "feedback.submit", trace.WithAttributes(
		attribute.String("feedback.user_id", userID),
		attribute.String("feedback.prompt_id", promptID),
		attribute.Int("feedback.rating", rating),
	))
	defer span.End()

	userFound, promptFound, err := s.lookup(ctx, userID, promptID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		observability.FeedbackSubmissions().WithLabelValues("error").Inc()
		return dto.SubmitFeedbackResponse{}, err
	}

	if !userFound || !promptFound {
		span.SetStatus(codes.Error, "not found")
		observability.FeedbackSubmissions().WithLabelValues("not_found").Inc()
		return feedbackFailure(msgFeedbackNotFound), nil
	}

	if rating < minRating || rating > maxRating {
		span.SetStatus(codes.Error, "rating out of range")
		observability.FeedbackSubmissions().WithLabelValues("invalid_rating").Inc()
		return feedbackFailure(msgFeedbackRatingRange), nil
	}

	content := ""
	if comments != nil {
		content = *comments
	}

	record := models.Feedback{
		UserID:   userID,
		PromptID: promptID,
		Rating:   rating,
		Content:  content,
	}

	if err := s.feedback.Create(ctx, &record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.FeedbackSubmissions().WithLabelValues("insert_failed").Inc()
		s.logger.Error().Err(err).Str("user_id", userID).Str("prompt_id", promptID).Msg("failed to store feedback")
		return feedbackFailure(feedbackFailurePrefix + err.Error()), nil
	}

	s.announce(ctx, record)

	observability.FeedbackSubmissions().WithLabelValues("stored").Inc()
	span.SetStatus(codes.Ok, "stored")
	s.logger.Info().Str("feedback_id", record.ID).Str("prompt_id", promptID).Int("rating", rating).Msg("feedback stored")

	feedbackID := record.ID
	return dto.SubmitFeedbackResponse{
		Success:    true,
		Message:    msgFeedbackSubmitted,
		FeedbackID: &feedbackID,
	}, nil
}

// lookup resolves both records concurrently; both lookups always run to completion.
func (s *feedbackService) lookup(ctx context.Context, userID, promptID string) (bool, bool, error) {
	var (
		group       errgroup.Group
		userFound   bool
		promptFound bool
	)

	group.Go(func() error {
		found, err := s.users.Exists(ctx, userID)
		if err != nil {
			return fmt.Errorf("lookup user: %w", err)
		}
		userFound = found
		return nil
	})
	group.Go(func() error {
		found, err := s.prompts.Exists(ctx, promptID)
		if err != nil {
			return fmt.Errorf("lookup prompt: %w", err)
		}
		promptFound = found
		return nil
	})

	if err := group.Wait(); err != nil {
		return false, false, err
	}

	return userFound, promptFound, nil
}

func (s *feedbackService) announce(ctx context.Context, record models.Feedback) {
	event := dto.FeedbackSubmittedEvent{
		FeedbackID:    record.ID,
		UserID:        record.UserID,
		PromptID:      record.PromptID,
		Rating:        record.Rating,
		HasComment:    record.Content != "",
		CorrelationID: middleware.CorrelationIDFromContext(ctx),
		SubmittedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.publisher.PublishSubmitted(ctx, event); err != nil {
		observability.FeedbackEventsFailed().Inc()
		s.logger.Warn().Err(err).Str("feedback_id", record.ID).Msg("feedback event not published")
	}
}

func feedbackFailure(message string) dto.SubmitFeedbackResponse {
	return dto.SubmitFeedbackResponse{Success: false, Message: message}
}
