package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskmail/internal/service"
)

func TestSpamClassifier(t *testing.T) {
	classifier := service.NewSpamClassifier([]string{"free money", "viagra", "lottery winner"})

	t.Run("flags keyword in subject", func(t *testing.T) {
		assert.True(t, classifier.IsSpam("Claim your FREE MONEY now", "regular body"))
	})

	t.Run("flags keyword in body", func(t *testing.T) {
		assert.True(t, classifier.IsSpam("Hello", "you are a lottery winner, congratulations"))
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		assert.True(t, classifier.IsSpam("VIAGRA sale", ""))
	})

	t.Run("clean email passes", func(t *testing.T) {
		assert.False(t, classifier.IsSpam("Budget review", "Please review the attached budget."))
	})

	t.Run("empty email passes", func(t *testing.T) {
		assert.False(t, classifier.IsSpam("", ""))
	})
}

func TestSpamClassifierEmptyKeywordsFailsOpen(t *testing.T) {
	classifier := service.NewSpamClassifier(nil)
	assert.False(t, classifier.IsSpam("free money", "free money everywhere"))
}
