package strategy

import "taskmail/internal/model"

// SalesStrategy suggests sales-related actions.
type SalesStrategy struct{}

func (SalesStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Schedule Demo", ActionType: "demo", Handler: "handle_demo"},
		{Label: "Send Pricing", ActionType: "pricing", Handler: "handle_pricing"},
	}
}
