package security

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"taskmail/internal/repository"
)

// Rejection reasons, in the order the gate checks them.
const (
	ReasonMissingCredentials = "missing_credentials"
	ReasonInvalidAPIKey      = "invalid_api_key"
	ReasonIPNotAllowed       = "ip_not_allowed"
)

// Decision is the outcome of one webhook authentication attempt.
type Decision struct {
	Allowed bool
	Reason  string
}

// Gate authenticates inbound webhook requests against the active security
// config: API key first, then source IP allowlist. Every attempt is logged
// as a security event and failures feed the tracker.
type Gate struct {
	configRepo   repository.WebhookConfigRepository
	tracker      *FailureTracker
	emergencyKey string
	skipIPCheck  bool
	logger       zerolog.Logger
}

func NewGate(
	configRepo repository.WebhookConfigRepository,
	tracker *FailureTracker,
	emergencyKey string,
	skipIPCheck bool,
	logger zerolog.Logger,
) *Gate {
	return &Gate{
		configRepo:   configRepo,
		tracker:      tracker,
		emergencyKey: emergencyKey,
		skipIPCheck:  skipIPCheck,
		logger:       logger.With().Str("component", "webhook_gate").Logger(),
	}
}

// Authenticate checks apiKey and sourceIP against the active config. The
// error is non-nil only for infrastructure failures; a rejected request is
// an Allowed=false decision.
func (g *Gate) Authenticate(ctx context.Context, apiKey, sourceIP string) (Decision, error) {
	if apiKey == "" || sourceIP == "" {
		return g.reject(sourceIP, ReasonMissingCredentials), nil
	}

	if g.emergencyKey != "" && apiKey == g.emergencyKey {
		g.logAttempt(sourceIP, "allowed", "emergency_key")
		return Decision{Allowed: true}, nil
	}

	config, err := g.configRepo.FindActiveByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return g.reject(sourceIP, ReasonInvalidAPIKey), nil
		}
		return Decision{}, fmt.Errorf("failed to load webhook config: %w", err)
	}

	if !g.skipIPCheck && !config.AllowsIP(sourceIP) {
		return g.reject(sourceIP, ReasonIPNotAllowed), nil
	}

	g.logAttempt(sourceIP, "allowed", "")
	return Decision{Allowed: true}, nil
}

func (g *Gate) reject(sourceIP, reason string) Decision {
	g.logAttempt(sourceIP, "rejected", reason)
	if g.tracker != nil && sourceIP != "" {
		g.tracker.RecordFailure(sourceIP)
	}
	return Decision{Allowed: false, Reason: reason}
}

func (g *Gate) logAttempt(sourceIP, status, reason string) {
	event := g.logger.Info()
	if status == "rejected" {
		event = g.logger.Warn()
	}
	event = event.
		Str("event", "webhook_auth").
		Str("status", status).
		Str("source_ip", sourceIP)
	if reason != "" {
		event = event.Str("reason", reason)
	}
	event.Msg("webhook authentication attempt")
}

// GenerateSecureAPIKey returns a new URL-safe random API key.
func GenerateSecureAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
