package model

// SuggestedAction is one proposed follow-up for a task. Only the label
// surfaces on the task; the action type and handler name pair the label
// with the code that would execute it.
type SuggestedAction struct {
	Label      string `json:"label"`
	ActionType string `json:"action_type"`
	Handler    string `json:"handler"`
}
