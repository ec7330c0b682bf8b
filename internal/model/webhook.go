package model

import (
	"time"

	"github.com/google/uuid"
)

// WebhookSecurityConfig holds the credential and allowlist checked on every
// inbound webhook request. Lookups only consider configs with Active set.
type WebhookSecurityConfig struct {
	ID         string    `json:"id" db:"id"`
	APIKey     string    `json:"api_key" db:"api_key"`
	AllowedIPs []string  `json:"allowed_ips" db:"allowed_ips"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func NewWebhookSecurityConfig(apiKey string, allowedIPs []string) *WebhookSecurityConfig {
	now := time.Now()
	return &WebhookSecurityConfig{
		ID:         uuid.New().String(),
		APIKey:     apiKey,
		AllowedIPs: allowedIPs,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (c *WebhookSecurityConfig) AllowsIP(ip string) bool {
	for _, allowed := range c.AllowedIPs {
		if allowed == ip {
			return true
		}
	}
	return false
}
