package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"taskmail/internal/ai"
	"taskmail/internal/model"
	"taskmail/internal/service"
	"taskmail/internal/strategy"
)

func TestSuggesterUsesContextStrategies(t *testing.T) {
	suggester := service.NewActionSuggester(strategy.NewDefaultRegistry(), nil, false, zerolog.Nop())

	actions := suggester.Suggest(context.Background(), strategy.EmailView{Context: "scheduling"})
	labels := actionLabels(actions)

	assert.Equal(t, []string{"Schedule Meeting", "Decline Meeting", "Propose New Time"}, labels)
}

func TestSuggesterUnknownContextFallsBackToDefaults(t *testing.T) {
	suggester := service.NewActionSuggester(strategy.NewDefaultRegistry(), nil, false, zerolog.Nop())

	actions := suggester.Suggest(context.Background(), strategy.EmailView{Context: "other"})
	labels := actionLabels(actions)

	assert.Equal(t, []string{"Reply", "Forward", "Archive"}, labels)
}

func TestSuggesterCountInvariant(t *testing.T) {
	suggester := service.NewActionSuggester(strategy.NewDefaultRegistry(), nil, false, zerolog.Nop())

	contexts := []string{"scheduling", "sales", "support", "partner", "personal", "other", "unknown", ""}
	for _, emailContext := range contexts {
		actions := suggester.Suggest(context.Background(), strategy.EmailView{Context: emailContext})
		assert.GreaterOrEqual(t, len(actions), 2, "context %q", emailContext)
		assert.LessOrEqual(t, len(actions), 3, "context %q", emailContext)
	}
}

func TestSuggesterLabelsAreUnique(t *testing.T) {
	suggester := service.NewActionSuggester(strategy.NewDefaultRegistry(), nil, false, zerolog.Nop())

	for _, emailContext := range []string{"scheduling", "sales", "personal", "other"} {
		seen := make(map[string]bool)
		for _, action := range suggester.Suggest(context.Background(), strategy.EmailView{Context: emailContext}) {
			assert.False(t, seen[action.Label], "duplicate label %q for context %q", action.Label, emailContext)
			seen[action.Label] = true
		}
	}
}

func TestSuggesterEmptyRegistryStillSuggests(t *testing.T) {
	suggester := service.NewActionSuggester(strategy.NewRegistry(), nil, false, zerolog.Nop())

	actions := suggester.Suggest(context.Background(), strategy.EmailView{Context: "scheduling"})
	labels := actionLabels(actions)

	assert.Equal(t, []string{"Reply", "Forward", "Archive"}, labels)
}

func TestSuggesterAIPath(t *testing.T) {
	ctx := context.Background()

	t.Run("AI actions win when present", func(t *testing.T) {
		client := &ai.MockAIClient{
			SuggestActionsFunc: func(ctx context.Context, subject, body, sender, emailContext string) ([]model.SuggestedAction, error) {
				return []model.SuggestedAction{
					{Label: "Book Room", ActionType: "schedule", Handler: "handle_schedule"},
					{Label: "Send Agenda", ActionType: "reply", Handler: "handle_reply"},
				}, nil
			},
		}
		suggester := service.NewActionSuggester(strategy.NewDefaultRegistry(), client, true, zerolog.Nop())

		labels := actionLabels(suggester.Suggest(ctx, strategy.EmailView{Context: "scheduling"}))
		assert.Equal(t, []string{"Book Room", "Send Agenda"}, labels)
	})

	t.Run("AI failure falls back to strategies", func(t *testing.T) {
		client := &ai.MockAIClient{
			SuggestActionsFunc: func(ctx context.Context, subject, body, sender, emailContext string) ([]model.SuggestedAction, error) {
				return nil, errors.New("service unavailable")
			},
		}
		suggester := service.NewActionSuggester(strategy.NewDefaultRegistry(), client, true, zerolog.Nop())

		labels := actionLabels(suggester.Suggest(ctx, strategy.EmailView{Context: "scheduling"}))
		assert.Equal(t, []string{"Schedule Meeting", "Decline Meeting", "Propose New Time"}, labels)
	})

	t.Run("single AI action gets padded", func(t *testing.T) {
		client := &ai.MockAIClient{
			SuggestActionsFunc: func(ctx context.Context, subject, body, sender, emailContext string) ([]model.SuggestedAction, error) {
				return []model.SuggestedAction{
					{Label: "Escalate", ActionType: "escalate", Handler: "handle_escalate"},
				}, nil
			},
		}
		suggester := service.NewActionSuggester(strategy.NewDefaultRegistry(), client, true, zerolog.Nop())

		labels := actionLabels(suggester.Suggest(ctx, strategy.EmailView{Context: "support"}))
		assert.Equal(t, "Escalate", labels[0])
		assert.GreaterOrEqual(t, len(labels), 2)
		assert.LessOrEqual(t, len(labels), 3)
	})
}

func actionLabels(actions []model.SuggestedAction) []string {
	labels := make([]string, 0, len(actions))
	for _, action := range actions {
		labels = append(labels, action.Label)
	}
	return labels
}
