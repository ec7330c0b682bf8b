package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"taskmail/internal/repository"
	"taskmail/internal/service"
)

type TaskHandler struct {
	taskService   service.TaskService
	defaultUserID string
	logger        zerolog.Logger
}

func NewTaskHandler(taskService service.TaskService, defaultUserID string, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		defaultUserID: defaultUserID,
		logger:        logger.With().Str("component", "task_handler").Logger(),
	}
}

// GetTasks handles GET /api/v1/tasks.
func (h *TaskHandler) GetTasks(c echo.Context) error {
	ownerID := c.QueryParam("user_id")
	if ownerID == "" {
		ownerID = h.defaultUserID
	}

	tasks, err := h.taskService.GetTasks(c.Request().Context(), ownerID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list tasks")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list tasks"})
	}
	return c.JSON(http.StatusOK, map[string]any{"tasks": tasks})
}

type updateTaskRequest struct {
	Status      string `json:"status"`
	ActionTaken string `json:"action_taken"`
}

// UpdateTask handles PATCH /api/v1/tasks/:id.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), req.Status, req.ActionTaken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Task not found"})
		}
		if strings.Contains(err.Error(), "invalid task status") {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid task status"})
		}
		h.logger.Error().Err(err).Msg("failed to update task")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update task"})
	}
	return c.JSON(http.StatusOK, map[string]any{"task": task})
}
