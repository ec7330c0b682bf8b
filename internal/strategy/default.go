package strategy

import "taskmail/internal/model"

// DefaultEmailStrategy suggests the basic email actions.
type DefaultEmailStrategy struct{}

func (DefaultEmailStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Reply", ActionType: "reply", Handler: "handle_reply"},
		{Label: "Forward", ActionType: "forward", Handler: "handle_forward"},
		{Label: "Archive", ActionType: "archive", Handler: "handle_archive"},
	}
}
