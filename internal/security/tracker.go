package security

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// FailureTracker counts authentication failures per source IP inside a
// sliding window and logs an alert when an IP crosses the threshold.
// Observability only: it never blocks a request.
type FailureTracker struct {
	mu        sync.Mutex
	failures  map[string][]time.Time
	threshold int
	window    time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewFailureTracker(threshold int, window time.Duration, logger zerolog.Logger) *FailureTracker {
	return &FailureTracker{
		failures:  make(map[string][]time.Time),
		threshold: threshold,
		window:    window,
		logger:    logger.With().Str("component", "failure_tracker").Logger(),
		now:       time.Now,
	}
}

// RecordFailure notes one failed attempt from ip and returns the current
// in-window count for that IP.
func (t *FailureTracker) RecordFailure(ip string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	cutoff := now.Add(-t.window)

	kept := t.failures[ip][:0]
	for _, ts := range t.failures[ip] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)
	t.failures[ip] = kept

	count := len(kept)
	if count >= t.threshold {
		t.logger.Warn().
			Str("event", "webhook_failure_alert").
			Str("source_ip", ip).
			Int("failures", count).
			Dur("window", t.window).
			Msg("repeated webhook authentication failures")
	}
	return count
}

// Failures returns the current in-window failure count for ip without
// recording anything.
func (t *FailureTracker) Failures(ip string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-t.window)
	count := 0
	for _, ts := range t.failures[ip] {
		if ts.After(cutoff) {
			count++
		}
	}
	return count
}
