package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/prompt-refiner-api/internal/dto"
	"github.com/noah-isme/prompt-refiner-api/pkg/ai"
)

type stubGenerator struct {
	candidates []ai.Candidate
	err        error
	panicWith  interface{}
	calls      int
	last       ai.GenerationRequest
}

func (s *stubGenerator) Generate(_ context.Context, req ai.GenerationRequest) ([]ai.Candidate, error) {
	s.calls++
	s.last = req
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

func TestRefineServiceMissingAPIKey(t *testing.T) {
	generator := &stubGenerator{candidates: []ai.Candidate{{Content: "unused"}}}
	svc := NewRefineService(generator, RefineConfig{}, testLogger())

	for _, prompt := range []string{"", "short", "Refine this prompt please"} {
		resp := svc.Refine(context.Background(), prompt)
		require.Equal(t, dto.StatusFailed, resp.ProcessingStatus)
		require.Equal(t, "OpenAI API key is not set.", resp.RefinedPrompt)
	}
	require.Zero(t, generator.calls)
}

func TestRefineServiceNilGeneratorTreatedAsMissingKey(t *testing.T) {
	svc := NewRefineService(nil, RefineConfig{APIKey: "sk-test"}, testLogger())

	resp := svc.Refine(context.Background(), "Refine this prompt please")
	require.Equal(t, dto.StatusFailed, resp.ProcessingStatus)
	require.Equal(t, "OpenAI API key is not set.", resp.RefinedPrompt)
}

func TestRefineServiceNoCandidates(t *testing.T) {
	generator := &stubGenerator{}
	svc := NewRefineService(generator, RefineConfig{APIKey: "sk-test"}, testLogger())

	resp := svc.Refine(context.Background(), "Refine this prompt please")
	require.Equal(t, dto.StatusFailed, resp.ProcessingStatus)
	require.Equal(t, "Failed to refine prompt.", resp.RefinedPrompt)
	require.Equal(t, 1, generator.calls)
}

func TestRefineServiceCompletedStripsWhitespace(t *testing.T) {
	generator := &stubGenerator{candidates: []ai.Candidate{{Content: " hello "}, {Content: "ignored"}}}
	svc := NewRefineService(generator, RefineConfig{APIKey: "sk-test"}, testLogger())

	resp := svc.Refine(context.Background(), "  Make this better  ")
	require.Equal(t, dto.StatusCompleted, resp.ProcessingStatus)
	require.Equal(t, "hello", resp.RefinedPrompt)

	require.Equal(t, 1, generator.calls)
	require.Equal(t, RefinerSystemPrompt, generator.last.SystemMessage)
	require.Equal(t, "  Make this better  ", generator.last.UserMessage)
	require.Equal(t, DefaultRefinerModel, generator.last.Model)
}

func TestRefineServiceUsesConfiguredModel(t *testing.T) {
	generator := &stubGenerator{candidates: []ai.Candidate{{Content: "ok"}}}
	svc := NewRefineService(generator, RefineConfig{APIKey: "sk-test", Model: "gpt-4o"}, testLogger())

	svc.Refine(context.Background(), "Refine this prompt please")
	require.Equal(t, "gpt-4o", generator.last.Model)
}

func TestRefineServiceProviderError(t *testing.T) {
	generator := &stubGenerator{err: errors.New("request timed out")}
	svc := NewRefineService(generator, RefineConfig{APIKey: "sk-test"}, testLogger())

	resp := svc.Refine(context.Background(), "Refine this prompt please")
	require.Equal(t, dto.StatusError, resp.ProcessingStatus)
	require.True(t, strings.HasPrefix(resp.RefinedPrompt, "Error calling OpenAI API: "))
	require.Equal(t, "Error calling OpenAI API: request timed out", resp.RefinedPrompt)
}

func TestRefineServiceProviderPanic(t *testing.T) {
	generator := &stubGenerator{panicWith: "malformed response"}
	svc := NewRefineService(generator, RefineConfig{APIKey: "sk-test"}, testLogger())

	var resp dto.RefinePromptResponse
	require.NotPanics(t, func() {
		resp = svc.Refine(context.Background(), "Refine this prompt please")
	})
	require.Equal(t, dto.StatusError, resp.ProcessingStatus)
	require.Equal(t, "Error calling OpenAI API: malformed response", resp.RefinedPrompt)
}
