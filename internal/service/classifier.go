package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Context labels. ContextOther is the catch-all when nothing matches.
const (
	ContextScheduling = "scheduling"
	ContextSales      = "sales"
	ContextSupport    = "support"
	ContextPartner    = "partner"
	ContextPersonal   = "personal"
	ContextOther      = "other"
)

// ContextCategories lists every valid label, keyword-backed categories
// first in declaration order, which also decides keyword-count ties.
var ContextCategories = []string{
	ContextScheduling,
	ContextSales,
	ContextSupport,
	ContextPartner,
	ContextPersonal,
	ContextOther,
}

var categoryKeywords = map[string][]string{
	ContextScheduling: {
		"meeting", "schedule", "calendar", "call", "appointment",
		"time slot", "availability", "book a time",
	},
	ContextSales: {
		"pricing", "quote", "demo", "trial", "purchase", "product",
		"service", "cost", "price", "buy",
	},
	ContextSupport: {
		"help", "issue", "problem", "error", "bug", "ticket", "support",
		"assistance", "question",
	},
	ContextPartner: {
		"partnership", "collaboration", "joint", "alliance", "cooperation",
		"work together", "team up",
	},
	ContextPersonal: {
		"thank you", "congratulations", "welcome", "hello", "hi",
		"greetings", "personal", "catch up",
	},
}

// ClassifyContextRules classifies an email by keyword counting. The
// category with the strictly highest count wins, ties break toward the
// first-declared category, and no matches at all yields "other".
func ClassifyContextRules(subject, body string) string {
	text := strings.ToLower(subject + " " + body)

	best := ContextOther
	bestCount := 0
	for _, category := range ContextCategories {
		keywords, ok := categoryKeywords[category]
		if !ok {
			continue
		}
		count := 0
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				count++
			}
		}
		if count > bestCount {
			best = category
			bestCount = count
		}
	}
	return best
}

func validContext(label string) bool {
	for _, category := range ContextCategories {
		if category == label {
			return true
		}
	}
	return false
}

// ContextClassifier is the unified classifier: the AI path when enabled,
// the rule-based path as the guaranteed fallback. It never returns an
// error to callers.
type ContextClassifier struct {
	aiClient AIClient
	useAI    bool
	logger   zerolog.Logger
}

func NewContextClassifier(aiClient AIClient, useAI bool, logger zerolog.Logger) *ContextClassifier {
	return &ContextClassifier{
		aiClient: aiClient,
		useAI:    useAI,
		logger:   logger.With().Str("component", "context_classifier").Logger(),
	}
}

func (c *ContextClassifier) Classify(ctx context.Context, subject, body string) string {
	if c.useAI && c.aiClient != nil {
		label, err := c.aiClient.ClassifyEmail(ctx, subject, body, ContextCategories)
		if err != nil {
			c.logger.Warn().Err(err).Msg("AI classification failed, falling back to rules")
			return ClassifyContextRules(subject, body)
		}
		label = strings.ToLower(strings.TrimSpace(label))
		if !validContext(label) {
			c.logger.Warn().Str("label", label).Msg("AI returned unknown context, defaulting to other")
			return ContextOther
		}
		return label
	}
	return ClassifyContextRules(subject, body)
}
