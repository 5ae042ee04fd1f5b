package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/prompt-refiner-api/internal/dto"
)

// FeedbackPublisher announces stored feedback to downstream consumers.
type FeedbackPublisher interface {
	PublishSubmitted(ctx context.Context, event dto.FeedbackSubmittedEvent) error
}

type subjectPublisher interface {
	Publish(subject string, data []byte) error
}

// NATSFeedbackPublisher publishes feedback events as JSON on a NATS subject.
type NATSFeedbackPublisher struct {
	conn    subjectPublisher
	subject string
}

// NewNATSFeedbackPublisher constructs a publisher on the given connection and subject.
func NewNATSFeedbackPublisher(conn *nats.Conn, subject string) *NATSFeedbackPublisher {
	return newSubjectFeedbackPublisher(conn, subject)
}

func newSubjectFeedbackPublisher(conn subjectPublisher, subject string) *NATSFeedbackPublisher {
	return &NATSFeedbackPublisher{conn: conn, subject: subject}
}

func (p *NATSFeedbackPublisher) PublishSubmitted(_ context.Context, event dto.FeedbackSubmittedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}

	return nil
}

// LogFeedbackPublisher writes feedback events to the log. Used when no broker is configured.
type LogFeedbackPublisher struct {
	logger zerolog.Logger
}

// NewLogFeedbackPublisher constructs a logging publisher.
func NewLogFeedbackPublisher(logger zerolog.Logger) *LogFeedbackPublisher {
	return &LogFeedbackPublisher{logger: logger.With().Str("component", "feedback_events").Logger()}
}

func (l *LogFeedbackPublisher) PublishSubmitted(_ context.Context, event dto.FeedbackSubmittedEvent) error {
	l.logger.Info().
		Str("feedback_id", event.FeedbackID).
		Str("prompt_id", event.PromptID).
		Int("rating", event.Rating).
		Msg("feedback submitted")
	return nil
}
