package ai

import "context"

// GenerationRequest is a single two-turn chat completion request.
type GenerationRequest struct {
	SystemMessage string
	UserMessage   string
	Model         string
}

// Candidate is one completion option returned by the provider.
type Candidate struct {
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
}

// Generator describes a text-generation provider. Implementations return every
// candidate the provider produced, in provider order, and surface transport or
// provider failures as errors.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) ([]Candidate, error)
}
