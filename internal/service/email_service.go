package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"taskmail/internal/model"
	"taskmail/internal/repository"
)

type emailService struct {
	emailRepo  repository.EmailRepository
	taskRepo   repository.TaskRepository
	duplicates *DuplicateDetector
	mapper     *TaskMapper
	logger     zerolog.Logger
}

func NewEmailService(
	emailRepo repository.EmailRepository,
	taskRepo repository.TaskRepository,
	duplicates *DuplicateDetector,
	mapper *TaskMapper,
	logger zerolog.Logger,
) EmailService {
	return &emailService{
		emailRepo:  emailRepo,
		taskRepo:   taskRepo,
		duplicates: duplicates,
		mapper:     mapper,
		logger:     logger.With().Str("component", "email_service").Logger(),
	}
}

// IngestEmail runs the full pipeline for one submission: duplicate gate,
// persistence, then mapping. Duplicates are rejected before anything is
// stored; spam is stored flagged but produces no task.
func (s *emailService) IngestEmail(ctx context.Context, in IngestInput) (*IngestResult, error) {
	email := model.NewEmail(in.OwnerID, in.Sender, in.Subject, in.Body)
	email.Recipient = in.Recipient
	email.MessageID = in.MessageID

	dup, err := s.duplicates.IsDuplicate(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if dup {
		s.logger.Info().Str("owner_id", in.OwnerID).Msg("rejected duplicate email")
		return nil, ErrDuplicateEmail
	}

	if err := s.emailRepo.Create(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to save email: %w", err)
	}

	task, err := s.mapper.MapToTask(ctx, email, in.Actions, MapOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to map email to task: %w", err)
	}
	if task == nil {
		return &IngestResult{Email: email, SpamSuppressed: true}, nil
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	// The mapper filled in the email-level summary.
	if err := s.emailRepo.Update(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to update email: %w", err)
	}

	return &IngestResult{Email: email, Task: task}, nil
}

func (s *emailService) GetSpamEmails(ctx context.Context, ownerID string) ([]*model.Email, error) {
	return s.emailRepo.FindSpam(ctx, ownerID)
}

// MarkNotSpam clears the spam flag and reprocesses the email. When a task
// already exists for the email its fields are refreshed in place rather
// than creating a duplicate task.
func (s *emailService) MarkNotSpam(ctx context.Context, emailID string) (*model.Task, error) {
	email, err := s.emailRepo.FindByID(ctx, emailID)
	if err != nil {
		return nil, fmt.Errorf("failed to find email: %w", err)
	}

	email.IsSpam = false
	if err := s.emailRepo.Update(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to update email: %w", err)
	}

	// Spam was ruled out by the caller, so skip the gate and process fully.
	task, err := s.mapper.MapToTask(ctx, email, nil, MapOptions{
		SkipSpamCheck:       true,
		ForceFullProcessing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reprocess email: %w", err)
	}

	existing, err := s.taskRepo.FindByEmailID(ctx, email.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up task: %w", err)
	}
	if existing != nil {
		existing.Sender = task.Sender
		existing.Subject = task.Subject
		existing.Context = task.Context
		existing.Summary = task.Summary
		existing.Actions = task.Actions
		existing.EnsureActions()
		if err := s.taskRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
		return existing, nil
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	if err := s.emailRepo.Update(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to update email: %w", err)
	}
	return task, nil
}

func (s *emailService) ArchiveEmail(ctx context.Context, emailID string) error {
	email, err := s.emailRepo.FindByID(ctx, emailID)
	if err != nil {
		return fmt.Errorf("failed to find email: %w", err)
	}
	email.IsArchived = true
	if err := s.emailRepo.Update(ctx, email); err != nil {
		return fmt.Errorf("failed to archive email: %w", err)
	}
	return nil
}
