package service

import (
	"context"
	"errors"

	"taskmail/internal/model"
)

// ErrDuplicateEmail signals that an identical or near-identical email
// already exists for the owner. Distinct from spam suppression: nothing is
// stored for a duplicate.
var ErrDuplicateEmail = errors.New("duplicate email detected")

// IngestResult is the outcome of one email submission.
type IngestResult struct {
	Email          *model.Email
	Task           *model.Task
	SpamSuppressed bool
}

type EmailService interface {
	IngestEmail(ctx context.Context, in IngestInput) (*IngestResult, error)
	GetSpamEmails(ctx context.Context, ownerID string) ([]*model.Email, error)
	MarkNotSpam(ctx context.Context, emailID string) (*model.Task, error)
	ArchiveEmail(ctx context.Context, emailID string) error
}

// IngestInput carries one inbound email submission.
type IngestInput struct {
	OwnerID   string
	Sender    string
	Subject   string
	Body      string
	Recipient string
	MessageID string
	// Actions, when non-nil, overrides action suggestion entirely.
	Actions []string
}

type TaskService interface {
	GetTasks(ctx context.Context, ownerID string) ([]*model.Task, error)
	UpdateTask(ctx context.Context, taskID, status, actionTaken string) (*model.Task, error)
}

// AIClient is the delegated external-AI surface. Every method may fail;
// callers fall back to the rule-based path and never surface the error.
type AIClient interface {
	ClassifyEmail(ctx context.Context, subject, body string, categories []string) (string, error)
	SummarizeEmail(ctx context.Context, subject, body string) (string, error)
	SuggestActions(ctx context.Context, subject, body, sender, emailContext string) ([]model.SuggestedAction, error)
}
