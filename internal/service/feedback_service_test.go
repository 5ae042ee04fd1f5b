package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/prompt-refiner-api/internal/dto"
	"github.com/noah-isme/prompt-refiner-api/internal/middleware"
	"github.com/noah-isme/prompt-refiner-api/internal/models"
)

type stubExistence struct {
	mu    sync.Mutex
	known map[string]bool
	err   error
	calls []string
}

func (s *stubExistence) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, id)
	if s.err != nil {
		return false, s.err
	}
	return s.known[id], nil
}

type stubFeedbackRepo struct {
	created []models.Feedback
	err     error
}

func (s *stubFeedbackRepo) Create(_ context.Context, feedback *models.Feedback) error {
	if s.err != nil {
		return s.err
	}
	feedback.ID = "fb-1"
	s.created = append(s.created, *feedback)
	return nil
}

type recordingPublisher struct {
	events []dto.FeedbackSubmittedEvent
	err    error
}

func (r *recordingPublisher) PublishSubmitted(_ context.Context, event dto.FeedbackSubmittedEvent) error {
	r.events = append(r.events, event)
	return r.err
}

type feedbackFixture struct {
	users     *stubExistence
	prompts   *stubExistence
	repo      *stubFeedbackRepo
	publisher *recordingPublisher
	svc       FeedbackService
}

func newFeedbackFixture() *feedbackFixture {
	f := &feedbackFixture{
		users:     &stubExistence{known: map[string]bool{"user-1": true}},
		prompts:   &stubExistence{known: map[string]bool{"prompt-1": true}},
		repo:      &stubFeedbackRepo{},
		publisher: &recordingPublisher{},
	}
	f.svc = NewFeedbackService(f.users, f.prompts, f.repo, f.publisher, testLogger())
	return f
}

func TestFeedbackServiceUnknownUser(t *testing.T) {
	f := newFeedbackFixture()

	resp, err := f.svc.Submit(context.Background(), "user-404", "prompt-1", 3, nil)
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "User or prompt not found.", resp.Message)
	require.Nil(t, resp.FeedbackID)
	require.Empty(t, f.repo.created)
	require.Equal(t, []string{"prompt-1"}, f.prompts.calls, "both lookups are attempted")
}

func TestFeedbackServiceUnknownPromptTakesPrecedenceOverRating(t *testing.T) {
	f := newFeedbackFixture()

	resp, err := f.svc.Submit(context.Background(), "user-1", "prompt-404", 9, nil)
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "User or prompt not found.", resp.Message)
	require.Empty(t, f.repo.created)
}

func TestFeedbackServiceRatingOutOfRange(t *testing.T) {
	for _, rating := range []int{0, 6, -1, 100} {
		f := newFeedbackFixture()

		resp, err := f.svc.Submit(context.Background(), "user-1", "prompt-1", rating, strPtr("meh"))
		require.NoError(t, err)
		require.False(t, resp.Success)
		require.Equal(t, "Rating must be between 1 and 5.", resp.Message)
		require.Nil(t, resp.FeedbackID)
		require.Empty(t, f.repo.created)
		require.Empty(t, f.publisher.events)
	}
}

func TestFeedbackServiceStoresWithoutComments(t *testing.T) {
	f := newFeedbackFixture()

	resp, err := f.svc.Submit(context.Background(), "user-1", "prompt-1", 3, nil)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "Feedback submitted successfully.", resp.Message)
	require.NotNil(t, resp.FeedbackID)
	require.Equal(t, "fb-1", *resp.FeedbackID)

	require.Len(t, f.repo.created, 1)
	require.Equal(t, models.Feedback{ID: "fb-1", UserID: "user-1", PromptID: "prompt-1", Rating: 3, Content: ""}, f.repo.created[0])
}

func TestFeedbackServiceStoresCommentsAndPublishes(t *testing.T) {
	f := newFeedbackFixture()
	ctx := middleware.ContextWithCorrelation(context.Background(), "corr-7")

	for _, rating := range []int{1, 5} {
		resp, err := f.svc.Submit(ctx, "user-1", "prompt-1", rating, strPtr("much clearer"))
		require.NoError(t, err)
		require.True(t, resp.Success)
	}

	require.Len(t, f.repo.created, 2)
	require.Equal(t, "much clearer", f.repo.created[0].Content)
	require.Len(t, f.publisher.events, 2)
	event := f.publisher.events[1]
	require.Equal(t, "fb-1", event.FeedbackID)
	require.Equal(t, 5, event.Rating)
	require.True(t, event.HasComment)
	require.Equal(t, "corr-7", event.CorrelationID)
	require.NotEmpty(t, event.SubmittedAt)
}

func TestFeedbackServicePublishFailureDoesNotFailSubmission(t *testing.T) {
	f := newFeedbackFixture()
	f.publisher.err = errors.New("nats: connection closed")

	resp, err := f.svc.Submit(context.Background(), "user-1", "prompt-1", 4, nil)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, f.repo.created, 1)
}

func TestFeedbackServiceInsertFailure(t *testing.T) {
	f := newFeedbackFixture()
	f.repo.err = errors.New("violates foreign key constraint \"fk_feedback_prompt\"")

	resp, err := f.svc.Submit(context.Background(), "user-1", "prompt-1", 4, nil)
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "Failed to submit feedback: violates foreign key constraint \"fk_feedback_prompt\"", resp.Message)
	require.Nil(t, resp.FeedbackID)
	require.Empty(t, f.publisher.events)
}

func TestFeedbackServiceLookupFaultIsReturned(t *testing.T) {
	f := newFeedbackFixture()
	f.users.err = errors.New("connection refused")

	_, err := f.svc.Submit(context.Background(), "user-1", "prompt-1", 4, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection refused")
	require.Empty(t, f.repo.created)
	require.Equal(t, []string{"prompt-1"}, f.prompts.calls)
}

func TestFeedbackServiceDefaultsToLogPublisher(t *testing.T) {
	svc := NewFeedbackService(&stubExistence{known: map[string]bool{"u": true}}, &stubExistence{known: map[string]bool{"p": true}}, &stubFeedbackRepo{}, nil, testLogger())

	resp, err := svc.Submit(context.Background(), "u", "p", 2, nil)
	require.NoError(t, err)
	require.True(t, resp.Success)
}
