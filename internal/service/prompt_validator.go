package service

import (
	"unicode/utf8"

	"github.com/noah-isme/prompt-refiner-api/internal/dto"
)

const minPromptLength = 10

const (
	msgPromptEmpty    = "Prompt cannot be empty."
	msgPromptTooShort = "Prompt is too short."
)

// PromptValidator performs the structural checks applied before refinement.
type PromptValidator interface {
	Validate(prompt string) dto.ValidatePromptResponse
}

type promptValidator struct{}

// NewPromptValidator constructs a prompt validator.
func NewPromptValidator() PromptValidator {
	return promptValidator{}
}

// Validate counts characters as code points of the raw input; surrounding whitespace counts.
func (promptValidator) Validate(prompt string) dto.ValidatePromptResponse {
	if prompt == "" {
		return invalidPrompt(msgPromptEmpty, "Please provide a prompt for processing.")
	}

	if utf8.RuneCountInString(prompt) < minPromptLength {
		return invalidPrompt(msgPromptTooShort, "Consider providing more detail in your prompt for better results.")
	}

	return dto.ValidatePromptResponse{IsValid: true}
}

func invalidPrompt(message string, suggestions ...string) dto.ValidatePromptResponse {
	return dto.ValidatePromptResponse{
		IsValid:      false,
		ErrorMessage: &message,
		Suggestions:  suggestions,
	}
}
