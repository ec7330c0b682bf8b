package ai

import (
	"context"
	"errors"

	"taskmail/internal/model"
)

// MockAIClient is a test double with overridable behaviour per method.
type MockAIClient struct {
	ClassifyEmailFunc  func(ctx context.Context, subject, body string, categories []string) (string, error)
	SummarizeEmailFunc func(ctx context.Context, subject, body string) (string, error)
	SuggestActionsFunc func(ctx context.Context, subject, body, sender, emailContext string) ([]model.SuggestedAction, error)
}

func (m *MockAIClient) ClassifyEmail(ctx context.Context, subject, body string, categories []string) (string, error) {
	if m.ClassifyEmailFunc != nil {
		return m.ClassifyEmailFunc(ctx, subject, body, categories)
	}
	return "", errors.New("not implemented")
}

func (m *MockAIClient) SummarizeEmail(ctx context.Context, subject, body string) (string, error) {
	if m.SummarizeEmailFunc != nil {
		return m.SummarizeEmailFunc(ctx, subject, body)
	}
	return "", errors.New("not implemented")
}

func (m *MockAIClient) SuggestActions(ctx context.Context, subject, body, sender, emailContext string) ([]model.SuggestedAction, error) {
	if m.SuggestActionsFunc != nil {
		return m.SuggestActionsFunc(ctx, subject, body, sender, emailContext)
	}
	return nil, errors.New("not implemented")
}
