package strategy

import "taskmail/internal/model"

// ReplyStrategy suggests reply-related actions.
type ReplyStrategy struct{}

func (ReplyStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Quick Reply", ActionType: "reply", Handler: "handle_quick_reply"},
		{Label: "Reply with Template", ActionType: "template_reply", Handler: "handle_template_reply"},
		{Label: "Reply All", ActionType: "reply_all", Handler: "handle_reply_all"},
	}
}

// ForwardStrategy suggests forwarding-related actions.
type ForwardStrategy struct{}

func (ForwardStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Forward", ActionType: "forward", Handler: "handle_forward"},
		{Label: "Forward with Note", ActionType: "forward_note", Handler: "handle_forward_note"},
	}
}

// NotificationStrategy suggests notification and escalation actions.
type NotificationStrategy struct{}

func (NotificationStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Notify Team", ActionType: "notify_team", Handler: "handle_notify_team"},
		{Label: "Escalate", ActionType: "escalate", Handler: "handle_escalate"},
		{Label: "Set Reminder", ActionType: "reminder", Handler: "handle_reminder"},
	}
}
