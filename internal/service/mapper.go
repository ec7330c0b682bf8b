package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"taskmail/internal/model"
	"taskmail/internal/repository"
	"taskmail/internal/strategy"
)

// Defaults applied when an email arrives without a usable sender or
// subject. Data-quality signals, not errors.
const (
	DefaultSender  = "Unknown Sender"
	DefaultSubject = "(No Subject)"
)

// summarySnippetLength bounds how much of the body feeds the task summary.
const summarySnippetLength = 100

const ellipsis = "…"

// MapOptions tunes a single mapping invocation.
type MapOptions struct {
	// SkipSpamCheck disables the spam gate for this invocation.
	SkipSpamCheck bool
	// ForceFullProcessing maps an email whose spam flag is already set.
	// Only meaningful together with SkipSpamCheck, for the not-spam
	// reprocessing flow.
	ForceFullProcessing bool
}

// TaskMapper turns a persisted email into a fully-populated task. It never
// persists the task itself; the caller decides between insert and
// update-in-place.
type TaskMapper struct {
	spamClassifier *SpamClassifier
	classifier     *ContextClassifier
	summarizer     *Summarizer
	suggester      *ActionSuggester
	emailRepo      repository.EmailRepository
	logger         zerolog.Logger
}

func NewTaskMapper(
	spamClassifier *SpamClassifier,
	classifier *ContextClassifier,
	summarizer *Summarizer,
	suggester *ActionSuggester,
	emailRepo repository.EmailRepository,
	logger zerolog.Logger,
) *TaskMapper {
	return &TaskMapper{
		spamClassifier: spamClassifier,
		classifier:     classifier,
		summarizer:     summarizer,
		suggester:      suggester,
		emailRepo:      emailRepo,
		logger:         logger.With().Str("component", "task_mapper").Logger(),
	}
}

// MapToTask runs the pipeline for one email. A nil task with a nil error
// means the email was suppressed as spam: the flag is persisted on the
// email and no task is created.
func (m *TaskMapper) MapToTask(ctx context.Context, email *model.Email, explicitActions []string, opts MapOptions) (*model.Task, error) {
	// Spam gate: terminal for this invocation.
	if !opts.SkipSpamCheck && m.spamClassifier.IsSpam(email.Subject, email.Body) {
		email.IsSpam = true
		if err := m.emailRepo.Update(ctx, email); err != nil {
			return nil, fmt.Errorf("failed to persist spam flag: %w", err)
		}
		m.logger.Info().Str("email_id", email.ID).Msg("email suppressed as spam")
		return nil, nil
	}
	if email.IsSpam && !opts.ForceFullProcessing {
		return nil, nil
	}

	// Forwarded messages carry the original headers in the body; when
	// present those override the envelope values.
	fwdSender, fwdSubject := ExtractForwardedMetadata(email.Body)

	sender := fwdSender
	if sender == "" {
		sender = strings.TrimSpace(email.Sender)
	}
	if sender == "" {
		m.logger.Warn().Str("email_id", email.ID).Msg("email missing sender, defaulting")
		sender = DefaultSender
	}

	subject := fwdSubject
	if subject == "" {
		subject = strings.TrimSpace(email.Subject)
	}
	if subject == "" {
		m.logger.Warn().Str("email_id", email.ID).Msg("email missing subject, defaulting")
		subject = DefaultSubject
	}

	contextLabel := m.classifier.Classify(ctx, subject, email.Body)

	// Body-length policy: long bodies are cut to a bounded snippet before
	// anything downstream sees them.
	trimmedBody := strings.TrimSpace(email.Body)
	snippet := trimmedBody
	if runes := []rune(trimmedBody); len(runes) > summarySnippetLength {
		snippet = string(runes[:summarySnippetLength]) + ellipsis
	}

	summary := subject
	if trimmedBody != "" {
		summary = subject + ": " + snippet
	}

	// The email-level one-liner comes from the summarizer; the task keeps
	// the subject+snippet composition above.
	email.Summary = m.summarizer.Summarize(ctx, subject, snippet)

	actions := explicitActions
	if actions == nil {
		actions = m.suggester.SuggestLabels(ctx, strategy.EmailView{
			Sender:  sender,
			Subject: subject,
			Body:    email.Body,
			Context: contextLabel,
		})
	}
	// Outer safety net on top of the engine's own guarantee.
	if len(actions) == 0 {
		actions = append([]string(nil), model.DefaultActions...)
	}

	task := model.NewTask(email)
	task.Sender = sender
	task.Subject = subject
	task.Context = contextLabel
	task.Summary = summary
	task.Actions = actions
	return task, nil
}
