package strategy

import "taskmail/internal/model"

// TaskCompletionStrategy suggests task completion actions.
type TaskCompletionStrategy struct{}

func (TaskCompletionStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Mark Complete", ActionType: "complete", Handler: "handle_complete"},
		{Label: "Mark In Progress", ActionType: "in_progress", Handler: "handle_in_progress"},
		{Label: "Add to Project", ActionType: "add_to_project", Handler: "handle_add_to_project"},
	}
}

// TaskDelayStrategy suggests delay and rescheduling actions.
type TaskDelayStrategy struct{}

func (TaskDelayStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Delay 1 Day", ActionType: "delay_1d", Handler: "handle_delay_1d"},
		{Label: "Delay 1 Week", ActionType: "delay_1w", Handler: "handle_delay_1w"},
		{Label: "Schedule for Later", ActionType: "schedule_later", Handler: "handle_schedule_later"},
	}
}

// TaskIgnoreStrategy suggests ignore and archive actions.
type TaskIgnoreStrategy struct{}

func (TaskIgnoreStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Ignore", ActionType: "ignore", Handler: "handle_ignore"},
		{Label: "Archive", ActionType: "archive", Handler: "handle_archive"},
		{Label: "Snooze", ActionType: "snooze", Handler: "handle_snooze"},
	}
}
