package service

import "strings"

// SpamClassifier flags emails containing any of the configured keywords.
// An empty keyword list never flags anything: the check fails open.
type SpamClassifier struct {
	keywords []string
}

func NewSpamClassifier(keywords []string) *SpamClassifier {
	return &SpamClassifier{keywords: keywords}
}

func (c *SpamClassifier) IsSpam(subject, body string) bool {
	if len(c.keywords) == 0 {
		return false
	}
	text := strings.ToLower(subject + " " + body)
	for _, keyword := range c.keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
