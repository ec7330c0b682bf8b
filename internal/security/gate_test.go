package security

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmail/internal/model"
	"taskmail/internal/repository/memory"
)

func newTestGate(t *testing.T, emergencyKey string, skipIPCheck bool) (*Gate, *FailureTracker) {
	t.Helper()
	repo := memory.NewInMemoryWebhookConfigRepository()
	config := model.NewWebhookSecurityConfig("valid-key", []string{"10.0.0.1", "10.0.0.2"})
	require.NoError(t, repo.Save(context.Background(), config))

	tracker := NewFailureTracker(5, 10*time.Minute, zerolog.Nop())
	return NewGate(repo, tracker, emergencyKey, skipIPCheck, zerolog.Nop()), tracker
}

func TestGateRejectsMissingCredentials(t *testing.T) {
	gate, _ := newTestGate(t, "", false)

	decision, err := gate.Authenticate(context.Background(), "", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonMissingCredentials, decision.Reason)

	decision, err = gate.Authenticate(context.Background(), "valid-key", "")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonMissingCredentials, decision.Reason)
}

func TestGateRejectsInvalidKey(t *testing.T) {
	gate, _ := newTestGate(t, "", false)

	decision, err := gate.Authenticate(context.Background(), "wrong-key", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonInvalidAPIKey, decision.Reason)
}

func TestGateRejectsUnlistedIP(t *testing.T) {
	gate, _ := newTestGate(t, "", false)

	decision, err := gate.Authenticate(context.Background(), "valid-key", "192.168.1.1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonIPNotAllowed, decision.Reason)
}

func TestGateAllowsValidRequest(t *testing.T) {
	gate, _ := newTestGate(t, "", false)

	decision, err := gate.Authenticate(context.Background(), "valid-key", "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestGateKeyCheckedBeforeIP(t *testing.T) {
	gate, _ := newTestGate(t, "", false)

	// Both the key and the IP are wrong; the key failure wins.
	decision, err := gate.Authenticate(context.Background(), "wrong-key", "192.168.1.1")
	require.NoError(t, err)
	assert.Equal(t, ReasonInvalidAPIKey, decision.Reason)
}

func TestGateEmergencyKeyBypassesConfig(t *testing.T) {
	gate, _ := newTestGate(t, "emergency-key", false)

	decision, err := gate.Authenticate(context.Background(), "emergency-key", "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestGateSkipIPCheck(t *testing.T) {
	gate, _ := newTestGate(t, "", true)

	decision, err := gate.Authenticate(context.Background(), "valid-key", "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestGateRecordsFailures(t *testing.T) {
	gate, tracker := newTestGate(t, "", false)

	for i := 0; i < 3; i++ {
		_, err := gate.Authenticate(context.Background(), "wrong-key", "203.0.113.7")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, tracker.Failures("203.0.113.7"))
	assert.Equal(t, 0, tracker.Failures("10.0.0.1"))
}

func TestGateSuccessDoesNotRecordFailure(t *testing.T) {
	gate, tracker := newTestGate(t, "", false)

	_, err := gate.Authenticate(context.Background(), "valid-key", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 0, tracker.Failures("10.0.0.1"))
}

func TestFailureTrackerWindowExpiry(t *testing.T) {
	tracker := NewFailureTracker(5, time.Minute, zerolog.Nop())

	current := time.Now()
	tracker.now = func() time.Time { return current }

	tracker.RecordFailure("1.2.3.4")
	tracker.RecordFailure("1.2.3.4")
	assert.Equal(t, 2, tracker.Failures("1.2.3.4"))

	// Move past the window; old entries fall out.
	current = current.Add(2 * time.Minute)
	assert.Equal(t, 0, tracker.Failures("1.2.3.4"))
	assert.Equal(t, 1, tracker.RecordFailure("1.2.3.4"))
}

func TestFailureTrackerThresholdCount(t *testing.T) {
	tracker := NewFailureTracker(3, time.Minute, zerolog.Nop())

	assert.Equal(t, 1, tracker.RecordFailure("5.6.7.8"))
	assert.Equal(t, 2, tracker.RecordFailure("5.6.7.8"))
	assert.Equal(t, 3, tracker.RecordFailure("5.6.7.8"))
}

func TestGenerateSecureAPIKey(t *testing.T) {
	a, err := GenerateSecureAPIKey()
	require.NoError(t, err)
	b, err := GenerateSecureAPIKey()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), 40)
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "/")
}
