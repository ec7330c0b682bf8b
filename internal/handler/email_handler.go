package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"taskmail/internal/repository"
	"taskmail/internal/security"
	"taskmail/internal/service"
)

// EmailRequest is the inbound email payload, shared by the API and
// webhook endpoints.
type EmailRequest struct {
	Sender    string   `json:"sender"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	Recipient string   `json:"recipient"`
	MessageID string   `json:"message_id"`
	Actions   []string `json:"actions"`
}

type EmailHandler struct {
	emailService  service.EmailService
	gate          *security.Gate
	defaultUserID string
	logger        zerolog.Logger
}

func NewEmailHandler(emailService service.EmailService, gate *security.Gate, defaultUserID string, logger zerolog.Logger) *EmailHandler {
	return &EmailHandler{
		emailService:  emailService,
		gate:          gate,
		defaultUserID: defaultUserID,
		logger:        logger.With().Str("component", "email_handler").Logger(),
	}
}

// IngestEmail handles POST /api/v1/email.
func (h *EmailHandler) IngestEmail(c echo.Context) error {
	var req EmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	return h.ingest(c, req)
}

// IncomingWebhook handles POST /api/v1/email/incoming. The payload is only
// parsed after the security gate admits the request.
func (h *EmailHandler) IncomingWebhook(c echo.Context) error {
	decision, err := h.gate.Authenticate(c.Request().Context(), c.Request().Header.Get("X-API-Key"), c.RealIP())
	if err != nil {
		h.logger.Error().Err(err).Msg("webhook authentication error")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if !decision.Allowed {
		switch decision.Reason {
		case security.ReasonMissingCredentials:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing API key"})
		case security.ReasonIPNotAllowed:
			return c.JSON(http.StatusForbidden, map[string]string{"error": "IP address not allowed"})
		default:
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Invalid API key"})
		}
	}

	var req EmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	return h.ingest(c, req)
}

func (h *EmailHandler) ingest(c echo.Context, req EmailRequest) error {
	result, err := h.emailService.IngestEmail(c.Request().Context(), service.IngestInput{
		OwnerID:   h.ownerID(c),
		Sender:    req.Sender,
		Subject:   req.Subject,
		Body:      req.Body,
		Recipient: req.Recipient,
		MessageID: req.MessageID,
		Actions:   req.Actions,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Duplicate email"})
		}
		h.logger.Error().Err(err).Msg("failed to ingest email")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process email"})
	}

	if result.SpamSuppressed {
		return c.JSON(http.StatusOK, map[string]any{
			"email_id": result.Email.ID,
			"spam":     true,
			"message":  "Email flagged as spam, no task created",
		})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"email_id": result.Email.ID,
		"task_id":  result.Task.ID,
	})
}

// GetSpamEmails handles GET /api/v1/email/spam.
func (h *EmailHandler) GetSpamEmails(c echo.Context) error {
	emails, err := h.emailService.GetSpamEmails(c.Request().Context(), h.ownerID(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list spam emails")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list spam emails"})
	}
	return c.JSON(http.StatusOK, map[string]any{"emails": emails})
}

// MarkNotSpam handles PATCH /api/v1/email/:id/not-spam.
func (h *EmailHandler) MarkNotSpam(c echo.Context) error {
	task, err := h.emailService.MarkNotSpam(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Email not found"})
		}
		h.logger.Error().Err(err).Msg("failed to mark email as not spam")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to reprocess email"})
	}
	return c.JSON(http.StatusOK, map[string]any{"task": task})
}

// ArchiveEmail handles PATCH /api/v1/email/:id/archive.
func (h *EmailHandler) ArchiveEmail(c echo.Context) error {
	if err := h.emailService.ArchiveEmail(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Email not found"})
		}
		h.logger.Error().Err(err).Msg("failed to archive email")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to archive email"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Email archived"})
}

func (h *EmailHandler) ownerID(c echo.Context) string {
	if userID := c.QueryParam("user_id"); userID != "" {
		return userID
	}
	return h.defaultUserID
}
