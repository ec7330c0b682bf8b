package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Sentinels for emails that give the heuristics nothing to work with.
const (
	summaryNoContent = "No content available"
	summaryFallback  = "Task from incoming email"
)

// Subjects matching any of these convey no meaning of their own, so the
// body gets mined for a first sentence instead.
var genericSubjectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^re:`),
	regexp.MustCompile(`(?i)^fw:`),
	regexp.MustCompile(`(?i)^fwd:`),
	regexp.MustCompile(`(?i)^follow up$`),
	regexp.MustCompile(`(?i)^quick question$`),
	regexp.MustCompile(`(?i)^hi$`),
	regexp.MustCompile(`(?i)^hello$`),
	regexp.MustCompile(`(?i)^thanks$`),
	regexp.MustCompile(`(?i)^thank you$`),
	regexp.MustCompile(`(?i)^update$`),
}

var (
	greetingPrefixRe = regexp.MustCompile(`(?i)^(hi|hello|dear|thanks|thank you)[,\s]+`)
	firstSentenceRe  = regexp.MustCompile(`^(.+?[.!?])(\s|$)`)
)

func IsGenericSubject(subject string) bool {
	subject = strings.ToLower(strings.TrimSpace(subject))
	if subject == "" {
		return true
	}
	for _, pattern := range genericSubjectPatterns {
		if pattern.MatchString(subject) {
			return true
		}
	}
	return false
}

// ExtractFirstSentence returns the first complete sentence of a text
// block, with any leading greeting stripped. Falls back to the first
// non-empty line when no sentence terminator is found.
func ExtractFirstSentence(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = greetingPrefixRe.ReplaceAllString(text, "")
	if m := firstSentenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	firstLine := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	return firstLine
}

// Summarizer produces a one-line description of an email: the AI path when
// enabled, heuristics otherwise or on any AI failure. The result is never
// empty.
type Summarizer struct {
	aiClient AIClient
	useAI    bool
	logger   zerolog.Logger
}

func NewSummarizer(aiClient AIClient, useAI bool, logger zerolog.Logger) *Summarizer {
	return &Summarizer{
		aiClient: aiClient,
		useAI:    useAI,
		logger:   logger.With().Str("component", "summarizer").Logger(),
	}
}

func (s *Summarizer) Summarize(ctx context.Context, subject, body string) string {
	if s.useAI && s.aiClient != nil {
		summary, err := s.aiClient.SummarizeEmail(ctx, subject, body)
		if err != nil {
			s.logger.Warn().Err(err).Msg("AI summarization failed, falling back to heuristics")
		} else if trimmed := strings.TrimSpace(summary); trimmed != "" {
			return trimmed
		}
	}
	return heuristicSummary(subject, body)
}

func heuristicSummary(subject, body string) string {
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)

	if subject == "" && body == "" {
		return summaryNoContent
	}
	if subject != "" && !IsGenericSubject(subject) {
		return "Handle: " + subject
	}
	if sentence := ExtractFirstSentence(body); sentence != "" {
		return "Follow up: " + sentence
	}
	return summaryFallback
}
