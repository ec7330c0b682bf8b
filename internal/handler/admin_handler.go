package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"taskmail/internal/model"
	"taskmail/internal/repository"
	"taskmail/internal/security"
)

// AdminHandler manages the webhook security configuration.
type AdminHandler struct {
	configRepo repository.WebhookConfigRepository
	logger     zerolog.Logger
}

func NewAdminHandler(configRepo repository.WebhookConfigRepository, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		configRepo: configRepo,
		logger:     logger.With().Str("component", "admin_handler").Logger(),
	}
}

// GetWebhookSecurity handles GET /api/v1/admin/webhook/security. The API
// key is never echoed back.
func (h *AdminHandler) GetWebhookSecurity(c echo.Context) error {
	config, err := h.configRepo.FindActive(c.Request().Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "No active webhook security config"})
		}
		h.logger.Error().Err(err).Msg("failed to load webhook security config")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load config"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":          config.ID,
		"allowed_ips": config.AllowedIPs,
		"active":      config.Active,
		"created_at":  config.CreatedAt,
	})
}

type createWebhookSecurityRequest struct {
	AllowedIPs []string `json:"allowed_ips"`
}

// CreateWebhookSecurity handles POST /api/v1/admin/webhook/security. A new
// random API key is generated and returned exactly once.
func (h *AdminHandler) CreateWebhookSecurity(c echo.Context) error {
	var req createWebhookSecurityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if len(req.AllowedIPs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "allowed_ips is required"})
	}

	apiKey, err := security.GenerateSecureAPIKey()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to generate api key")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate API key"})
	}

	config := model.NewWebhookSecurityConfig(apiKey, req.AllowedIPs)
	if err := h.configRepo.Save(c.Request().Context(), config); err != nil {
		h.logger.Error().Err(err).Msg("failed to save webhook security config")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save config"})
	}

	h.logger.Info().Str("config_id", config.ID).Msg("webhook security config created")
	return c.JSON(http.StatusCreated, map[string]any{
		"id":          config.ID,
		"api_key":     apiKey,
		"allowed_ips": config.AllowedIPs,
		"active":      config.Active,
	})
}
