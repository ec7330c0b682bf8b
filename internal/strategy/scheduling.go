package strategy

import "taskmail/internal/model"

// ScheduleMeetingStrategy suggests meeting-related actions.
type ScheduleMeetingStrategy struct{}

func (ScheduleMeetingStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Schedule Meeting", ActionType: "schedule", Handler: "handle_schedule"},
		{Label: "Decline Meeting", ActionType: "decline", Handler: "handle_decline"},
		{Label: "Propose New Time", ActionType: "reschedule", Handler: "handle_reschedule"},
	}
}

// ScheduleCallStrategy suggests call-related actions.
type ScheduleCallStrategy struct{}

func (ScheduleCallStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Schedule Call", ActionType: "call", Handler: "handle_call"},
		{Label: "Send Calendar Link", ActionType: "calendar", Handler: "handle_calendar"},
	}
}
