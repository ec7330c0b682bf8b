package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"

	"taskmail/internal/model"
	"taskmail/internal/repository"
)

// fuzzyScanWindow bounds how many recent emails the similarity pass
// compares against.
const fuzzyScanWindow = 100

// DuplicateDetector checks a candidate email against stored mail for the
// same owner: message-id match, exact content signature match, then a
// fuzzy similarity pass over the most recent emails. When the candidate is
// unique its content signature is attached, exactly once.
type DuplicateDetector struct {
	emailRepo repository.EmailRepository
	threshold float64
	logger    zerolog.Logger
}

func NewDuplicateDetector(emailRepo repository.EmailRepository, threshold float64, logger zerolog.Logger) *DuplicateDetector {
	return &DuplicateDetector{
		emailRepo: emailRepo,
		threshold: threshold,
		logger:    logger.With().Str("component", "duplicate_detector").Logger(),
	}
}

// ContentSignature computes the exact-duplicate hash for an email. The
// same (sender, subject, body) always yields the same signature.
func ContentSignature(sender, subject, body string) string {
	sum := sha256.Sum256([]byte(sender + subject + body))
	return hex.EncodeToString(sum[:])
}

func (d *DuplicateDetector) IsDuplicate(ctx context.Context, email *model.Email) (bool, error) {
	// Without tenant context the detector fails safe: never block.
	if email.OwnerID == "" {
		d.logger.Warn().Msg("email has no owner id, skipping duplicate check")
		return false, nil
	}

	if email.MessageID != "" {
		existing, err := d.emailRepo.FindByMessageID(ctx, email.OwnerID, email.MessageID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return false, fmt.Errorf("failed to look up message id: %w", err)
		}
		if existing != nil {
			return true, nil
		}
	}

	exactSig := ContentSignature(email.Sender, email.Subject, email.Body)
	existing, err := d.emailRepo.FindBySignature(ctx, email.OwnerID, exactSig)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to look up signature: %w", err)
	}
	if existing != nil {
		return true, nil
	}

	recent, err := d.emailRepo.FindRecent(ctx, email.OwnerID, fuzzyScanWindow)
	if err != nil {
		return false, fmt.Errorf("failed to fetch recent emails: %w", err)
	}
	for _, other := range recent {
		subjectSim := similarityRatio(email.Subject, other.Subject)
		bodySim := similarityRatio(email.Body, other.Body)
		if (subjectSim+bodySim)/2 >= d.threshold {
			d.logger.Info().
				Str("email_id", other.ID).
				Float64("subject_similarity", subjectSim).
				Float64("body_similarity", bodySim).
				Msg("fuzzy duplicate match")
			return true, nil
		}
	}

	// Unique: attach the exact signature so later submissions of the same
	// content hit the cheap lookup. Set once, never recomputed.
	email.Signature = exactSig
	return false, nil
}

// similarityRatio returns the sequence-similarity ratio of two strings in
// [0,1], computed over their rune sequences.
func similarityRatio(a, b string) float64 {
	matcher := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return matcher.Ratio()
}
