package service

import (
	"regexp"
	"strings"
)

var (
	forwardedFromRe    = regexp.MustCompile(`(?m)^From:\s*(.+)$`)
	forwardedSubjectRe = regexp.MustCompile(`(?m)^Subject:\s*(.+)$`)
	headerLikeRe       = regexp.MustCompile(`(?i)^(from|subject|to|cc|date|sent):`)
)

// ExtractForwardedMetadata scans an email body for the original sender and
// subject lines that forwarding mail clients embed. Each header is matched
// independently; a capture that is empty after trimming, or that itself
// looks like another header line, is treated as absent.
func ExtractForwardedMetadata(body string) (sender, subject string) {
	if body == "" {
		return "", ""
	}
	if m := forwardedFromRe.FindStringSubmatch(body); m != nil {
		sender = cleanForwardedValue(m[1])
	}
	if m := forwardedSubjectRe.FindStringSubmatch(body); m != nil {
		subject = cleanForwardedValue(m[1])
	}
	return sender, subject
}

func cleanForwardedValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || headerLikeRe.MatchString(value) {
		return ""
	}
	return value
}
