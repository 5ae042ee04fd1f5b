package dto

// ProcessingStatus tags the outcome of a refinement request.
type ProcessingStatus string

const (
	// StatusCompleted means the provider returned a refined prompt.
	StatusCompleted ProcessingStatus = "Completed"
	// StatusFailed means no credential was configured or the provider returned no candidates.
	StatusFailed ProcessingStatus = "Failed"
	// StatusError means the provider call itself faulted.
	StatusError ProcessingStatus = "Error"
)

// ValidatePromptRequest carries the prompt to validate.
type ValidatePromptRequest struct {
	Prompt *string `json:"prompt" validate:"required"`
}

// ValidatePromptResponse reports whether a prompt passed validation.
type ValidatePromptResponse struct {
	IsValid      bool     `json:"isValid"`
	ErrorMessage *string  `json:"errorMessage"`
	Suggestions  []string `json:"suggestions"`
}

// RefinePromptRequest carries the prompt to refine.
type RefinePromptRequest struct {
	UserPrompt *string `json:"user_prompt" validate:"required"`
}

// RefinePromptResponse holds the refined prompt and how the refinement went.
type RefinePromptResponse struct {
	RefinedPrompt    string           `json:"refined_prompt"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`
}
