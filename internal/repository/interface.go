package repository

import (
	"context"
	"errors"

	"taskmail/internal/model"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// EmailRepository defines the interface for email data operations.
// Every lookup that takes an ownerID is scoped to that owner.
type EmailRepository interface {
	Create(ctx context.Context, email *model.Email) error
	FindByID(ctx context.Context, id string) (*model.Email, error)
	FindByMessageID(ctx context.Context, ownerID, messageID string) (*model.Email, error)
	FindBySignature(ctx context.Context, ownerID, signature string) (*model.Email, error)
	FindRecent(ctx context.Context, ownerID string, limit int) ([]*model.Email, error)
	FindSpam(ctx context.Context, ownerID string) ([]*model.Email, error)
	Update(ctx context.Context, email *model.Email) error
}

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	FindByEmailID(ctx context.Context, emailID string) (*model.Task, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
}

// WebhookConfigRepository defines the interface for webhook security
// config operations. FindActive returns the authoritative active config.
type WebhookConfigRepository interface {
	FindActive(ctx context.Context) (*model.WebhookSecurityConfig, error)
	FindActiveByAPIKey(ctx context.Context, apiKey string) (*model.WebhookSecurityConfig, error)
	Save(ctx context.Context, config *model.WebhookSecurityConfig) error
}
