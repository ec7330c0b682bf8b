package service

import (
	"context"

	"github.com/rs/zerolog"

	"taskmail/internal/model"
	"taskmail/internal/strategy"
)

const (
	minSuggestedActions = 2
	maxSuggestedActions = 3
)

// ActionSuggester resolves 2-3 suggested actions for an email: the AI path
// first when enabled, then the strategy registry, with the hard-coded
// default triple as the final guarantee. Labels are unique within a
// result and the result is never shorter than two.
type ActionSuggester struct {
	registry *strategy.Registry
	aiClient AIClient
	useAI    bool
	logger   zerolog.Logger
}

func NewActionSuggester(registry *strategy.Registry, aiClient AIClient, useAI bool, logger zerolog.Logger) *ActionSuggester {
	return &ActionSuggester{
		registry: registry,
		aiClient: aiClient,
		useAI:    useAI,
		logger:   logger.With().Str("component", "action_suggester").Logger(),
	}
}

func (s *ActionSuggester) Suggest(ctx context.Context, email strategy.EmailView) []model.SuggestedAction {
	var actions []model.SuggestedAction
	seen := make(map[string]bool)

	if s.useAI && s.aiClient != nil {
		aiActions, err := s.aiClient.SuggestActions(ctx, email.Subject, email.Body, email.Sender, email.Context)
		if err != nil {
			s.logger.Warn().Err(err).Msg("AI action suggestion failed, falling back to strategies")
		} else {
			actions = appendActions(actions, seen, aiActions)
		}
	}

	// Zero usable AI actions means the rule-based path takes over entirely.
	if len(actions) == 0 {
		strategies := s.registry.Strategies(email.Context)
		if len(strategies) == 0 {
			strategies = s.registry.DefaultStrategies()
		}
		for _, st := range strategies {
			actions = appendActions(actions, seen, st.Actions(email))
		}

		if len(actions) < minSuggestedActions {
			for _, st := range s.registry.DefaultStrategies() {
				actions = appendActions(actions, seen, st.Actions(email))
				if len(actions) >= minSuggestedActions {
					break
				}
			}
		}
	}

	// Final guarantee: pad from the hard-coded triple.
	if len(actions) < minSuggestedActions {
		fallback := []model.SuggestedAction{
			{Label: "Reply", ActionType: "reply", Handler: "handle_reply"},
			{Label: "Forward", ActionType: "forward", Handler: "handle_forward"},
			{Label: "Archive", ActionType: "archive", Handler: "handle_archive"},
		}
		actions = appendActions(actions, seen, fallback)
	}

	if len(actions) > maxSuggestedActions {
		actions = actions[:maxSuggestedActions]
	}
	return actions
}

// SuggestLabels returns just the action labels, the form tasks store.
func (s *ActionSuggester) SuggestLabels(ctx context.Context, email strategy.EmailView) []string {
	actions := s.Suggest(ctx, email)
	labels := make([]string, 0, len(actions))
	for _, action := range actions {
		labels = append(labels, action.Label)
	}
	return labels
}

func appendActions(actions []model.SuggestedAction, seen map[string]bool, candidates []model.SuggestedAction) []model.SuggestedAction {
	for _, candidate := range candidates {
		if candidate.Label == "" || seen[candidate.Label] {
			continue
		}
		seen[candidate.Label] = true
		actions = append(actions, candidate)
	}
	return actions
}
