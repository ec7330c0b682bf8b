package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusArchived   = "archived"
)

// DefaultActions is the hard-coded fallback action set. A task never ends
// up with an empty action list.
var DefaultActions = []string{"Reply", "Forward", "Archive"}

type Task struct {
	ID          string    `json:"id" db:"id"`
	EmailID     string    `json:"email_id" db:"email_id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Sender      string    `json:"sender" db:"sender"`
	Subject     string    `json:"subject" db:"subject"`
	Context     string    `json:"context" db:"context"`
	Summary     string    `json:"summary" db:"summary"`
	Actions     []string  `json:"actions" db:"actions"`
	Status      string    `json:"status" db:"status"`
	ActionTaken string    `json:"action_taken,omitempty" db:"action_taken"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func NewTask(email *Email) *Task {
	now := time.Now()
	return &Task{
		ID:        uuid.New().String(),
		EmailID:   email.ID,
		OwnerID:   email.OwnerID,
		Sender:    email.Sender,
		Subject:   email.Subject,
		Actions:   append([]string(nil), DefaultActions...),
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EnsureActions restores the default action set if the task somehow lost
// every action.
func (t *Task) EnsureActions() {
	if len(t.Actions) == 0 {
		t.Actions = append([]string(nil), DefaultActions...)
	}
}

func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone, TaskStatusArchived:
		return true
	}
	return false
}
