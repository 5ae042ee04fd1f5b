package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/prompt-refiner-api/internal/dto"
	"github.com/noah-isme/prompt-refiner-api/internal/observability"
	"github.com/noah-isme/prompt-refiner-api/pkg/ai"
)

// RefinerSystemPrompt is the instruction sent ahead of every user prompt.
const RefinerSystemPrompt = "You are a prompt refiner. Use advanced prompt engineering techniques to refine the user's prompt."

// DefaultRefinerModel is used when no model is configured.
const DefaultRefinerModel = "gpt-4"

const (
	msgAPIKeyMissing  = "OpenAI API key is not set."
	msgRefineFailed   = "Failed to refine prompt."
	refineErrorPrefix = "Error calling OpenAI API: "
)

// RefineConfig carries the provider credential and model selection.
type RefineConfig struct {
	APIKey string
	Model  string
}

// RefineService rewrites prompts through the configured generator.
type RefineService interface {
	Refine(ctx context.Context, userPrompt string) dto.RefinePromptResponse
}

type refineService struct {
	generator ai.Generator
	config    RefineConfig
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewRefineService constructs a refine service. generator may be nil when no API key is configured.
func NewRefineService(generator ai.Generator, cfg RefineConfig, logger zerolog.Logger) RefineService {
	if cfg.Model == "" {
		cfg.Model = DefaultRefinerModel
	}

	return &refineService{
		generator: generator,
		config:    cfg,
		logger:    logger.With().Str("component", "refine_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/prompt-refiner-api/internal/service/refine"),
	}
}

// Refine never returns an error: every provider outcome is encoded in the response status.
func (s *refineService) Refine(ctx context.Context, userPrompt string) dto.RefinePromptResponse {
	ctx, span := s.tracer.Start(ctx, "prompt.refine", trace.WithAttributes(
		attribute.String("refine.model", s.config.Model),
		attribute.Int("refine.prompt_length", utf8.RuneCountInString(userPrompt)),
	))
	defer span.End()

	response := s.refine(ctx, span, userPrompt)
	observability.Refinements().WithLabelValues(string(response.ProcessingStatus)).Inc()
	span.SetAttributes(attribute.String("refine.status", string(response.ProcessingStatus)))

	return response
}

func (s *refineService) refine(ctx context.Context, span trace.Span, userPrompt string) dto.RefinePromptResponse {
	if s.config.APIKey == "" || s.generator == nil {
		span.SetStatus(codes.Error, "api key missing")
		return dto.RefinePromptResponse{RefinedPrompt: msgAPIKeyMissing, ProcessingStatus: dto.StatusFailed}
	}

	candidates, err := s.generate(ctx, ai.GenerationRequest{
		SystemMessage: RefinerSystemPrompt,
		UserMessage:   userPrompt,
		Model:         s.config.Model,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")
		s.logger.Error().Err(err).Str("model", s.config.Model).Msg("prompt refinement failed")
		return dto.RefinePromptResponse{RefinedPrompt: refineErrorPrefix + err.Error(), ProcessingStatus: dto.StatusError}
	}

	if len(candidates) == 0 {
		span.SetStatus(codes.Error, "no candidates")
		s.logger.Warn().Str("model", s.config.Model).Msg("provider returned no candidates")
		return dto.RefinePromptResponse{RefinedPrompt: msgRefineFailed, ProcessingStatus: dto.StatusFailed}
	}

	span.SetStatus(codes.Ok, "refined")
	return dto.RefinePromptResponse{
		RefinedPrompt:    strings.TrimSpace(candidates[0].Content),
		ProcessingStatus: dto.StatusCompleted,
	}
}

// generate converts a panicking generator into an ordinary error.
func (s *refineService) generate(ctx context.Context, req ai.GenerationRequest) (candidates []ai.Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			candidates = nil
			err = fmt.Errorf("%v", r)
		}
	}()

	return s.generator.Generate(ctx, req)
}
