package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"taskmail/internal/model"
	"taskmail/internal/repository"
)

type taskService struct {
	taskRepo repository.TaskRepository
	logger   zerolog.Logger
}

func NewTaskService(taskRepo repository.TaskRepository, logger zerolog.Logger) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		logger:   logger.With().Str("component", "task_service").Logger(),
	}
}

func (s *taskService) GetTasks(ctx context.Context, ownerID string) ([]*model.Task, error) {
	return s.taskRepo.FindByOwnerID(ctx, ownerID)
}

// UpdateTask transitions a task to a new status. actionTaken is recorded
// only when the task lands on done.
func (s *taskService) UpdateTask(ctx context.Context, taskID, status, actionTaken string) (*model.Task, error) {
	if !model.ValidTaskStatus(status) {
		return nil, fmt.Errorf("invalid task status %q", status)
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Status = status
	if status == model.TaskStatusDone && actionTaken != "" {
		task.ActionTaken = actionTaken
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("status", status).
		Msg("task updated")
	return task, nil
}
