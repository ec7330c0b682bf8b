package strategy

import "taskmail/internal/model"

// ApprovalStrategy suggests approval and review actions.
type ApprovalStrategy struct{}

func (ApprovalStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Approve", ActionType: "approve", Handler: "handle_approve"},
		{Label: "Reject", ActionType: "reject", Handler: "handle_reject"},
		{Label: "Request Changes", ActionType: "request_changes", Handler: "handle_request_changes"},
	}
}

// ReviewStrategy suggests review and feedback actions.
type ReviewStrategy struct{}

func (ReviewStrategy) Actions(email EmailView) []model.SuggestedAction {
	return []model.SuggestedAction{
		{Label: "Review", ActionType: "review", Handler: "handle_review"},
		{Label: "Add Comments", ActionType: "add_comments", Handler: "handle_add_comments"},
		{Label: "Request Review", ActionType: "request_review", Handler: "handle_request_review"},
	}
}
