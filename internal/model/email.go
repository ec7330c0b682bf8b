package model

import (
	"time"

	"github.com/google/uuid"
)

type Email struct {
	ID         string    `json:"id" db:"id"`
	OwnerID    string    `json:"owner_id" db:"owner_id"`
	Sender     string    `json:"sender" db:"sender"`
	Subject    string    `json:"subject" db:"subject"`
	Body       string    `json:"body" db:"body"`
	Recipient  string    `json:"recipient,omitempty" db:"recipient"`
	MessageID  string    `json:"message_id,omitempty" db:"message_id"`
	Signature  string    `json:"signature,omitempty" db:"signature"`
	Summary    string    `json:"summary,omitempty" db:"summary"`
	IsSpam     bool      `json:"is_spam" db:"is_spam"`
	IsArchived bool      `json:"is_archived" db:"is_archived"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func NewEmail(ownerID, sender, subject, body string) *Email {
	now := time.Now()
	return &Email{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Sender:    sender,
		Subject:   subject,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
