package dto

// SubmitFeedbackRequest is the payload for rating a refinement.
type SubmitFeedbackRequest struct {
	UserID   *string `json:"user_id" validate:"required"`
	PromptID *string `json:"prompt_id" validate:"required"`
	Rating   *int    `json:"rating" validate:"required"`
	Comments *string `json:"comments"`
}

// SubmitFeedbackResponse confirms whether feedback was recorded.
type SubmitFeedbackResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	FeedbackID *string `json:"feedback_id"`
}

// FeedbackSubmittedEvent is published after a feedback row is stored.
type FeedbackSubmittedEvent struct {
	FeedbackID    string `json:"feedback_id"`
	UserID        string `json:"user_id"`
	PromptID      string `json:"prompt_id"`
	Rating        int    `json:"rating"`
	HasComment    bool   `json:"has_comment"`
	CorrelationID string `json:"correlation_id,omitempty"`
	SubmittedAt   string `json:"submitted_at"`
}
