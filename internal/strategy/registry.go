// Package strategy holds the action-strategy registry and the built-in
// strategies that back action suggestion.
package strategy

import "taskmail/internal/model"

// DefaultKey is the registry key consulted when a context has no
// strategies of its own.
const DefaultKey = "default"

// EmailView is the read-only slice of an email a strategy sees.
type EmailView struct {
	Sender  string
	Subject string
	Body    string
	Context string
}

// Strategy produces suggested actions for an email.
type Strategy interface {
	Actions(email EmailView) []model.SuggestedAction
}

// Registry maps a context label to an ordered list of strategies. It is
// populated once at startup and injected where needed; it is not safe for
// concurrent registration during live traffic.
type Registry struct {
	strategies map[string][]Strategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string][]Strategy)}
}

// Register appends a strategy under a context key. A strategy may be
// registered under several keys.
func (r *Registry) Register(context string, s Strategy) {
	r.strategies[context] = append(r.strategies[context], s)
}

// Strategies returns the strategies registered for a context, in
// registration order.
func (r *Registry) Strategies(context string) []Strategy {
	return r.strategies[context]
}

// DefaultStrategies returns the strategies under the default key.
func (r *Registry) DefaultStrategies() []Strategy {
	return r.strategies[DefaultKey]
}

// NewDefaultRegistry builds the registry with the built-in strategy set.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(DefaultKey, DefaultEmailStrategy{})
	r.Register(DefaultKey, ApprovalStrategy{})
	r.Register(DefaultKey, ReviewStrategy{})
	r.Register(DefaultKey, TaskCompletionStrategy{})
	r.Register(DefaultKey, TaskDelayStrategy{})
	r.Register(DefaultKey, TaskIgnoreStrategy{})
	r.Register(DefaultKey, ReplyStrategy{})
	r.Register(DefaultKey, ForwardStrategy{})
	r.Register(DefaultKey, NotificationStrategy{})

	r.Register("scheduling", ScheduleMeetingStrategy{})
	r.Register("scheduling", ScheduleCallStrategy{})

	// ScheduleCall and Approval also serve partner communications.
	r.Register("partner", ScheduleCallStrategy{})
	r.Register("partner", ApprovalStrategy{})

	r.Register("sales", SalesStrategy{})
	r.Register("sales", ReviewStrategy{})

	r.Register("personal", TaskIgnoreStrategy{})
	r.Register("support", NotificationStrategy{})

	return r
}
