package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"taskmail/internal/model"
	"taskmail/internal/service"
)

const (
	classifySystemPrompt = "You are an email classification assistant. " +
		"Classify the email into exactly one of the given categories. " +
		"Respond with the category name only, nothing else."

	summarizeSystemPrompt = "You are an email summarization assistant. " +
		"Summarize the email as a single short actionable sentence. " +
		"Respond with the sentence only."

	suggestSystemPrompt = "You are an email triage assistant. " +
		"Suggest 2 or 3 actions the recipient could take for this email. " +
		"Respond with a JSON array of objects with keys " +
		`"label", "action_type" and "handler". Respond with JSON only.`
)

// OpenAIClient implements the AI surface on the OpenAI chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) service.AIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIClient) ClassifyEmail(ctx context.Context, subject, body string, categories []string) (string, error) {
	prompt := fmt.Sprintf("Categories: %s\n\nSubject: %s\n\nBody:\n%s",
		strings.Join(categories, ", "), subject, body)

	resp, err := c.complete(ctx, classifySystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to classify email: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(resp)), nil
}

func (c *OpenAIClient) SummarizeEmail(ctx context.Context, subject, body string) (string, error) {
	prompt := fmt.Sprintf("Subject: %s\n\nBody:\n%s", subject, body)

	resp, err := c.complete(ctx, summarizeSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to summarize email: %w", err)
	}
	return strings.TrimSpace(resp), nil
}

func (c *OpenAIClient) SuggestActions(ctx context.Context, subject, body, sender, emailContext string) ([]model.SuggestedAction, error) {
	prompt := fmt.Sprintf("Sender: %s\nContext: %s\nSubject: %s\n\nBody:\n%s",
		sender, emailContext, subject, body)

	resp, err := c.complete(ctx, suggestSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest actions: %w", err)
	}

	var actions []model.SuggestedAction
	if err := json.Unmarshal([]byte(trimJSONFences(resp)), &actions); err != nil {
		return nil, fmt.Errorf("failed to parse suggested actions: %w", err)
	}

	// Drop entries the model produced without a usable label.
	valid := actions[:0]
	for _, action := range actions {
		if strings.TrimSpace(action.Label) == "" {
			continue
		}
		valid = append(valid, action)
	}
	return valid, nil
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// trimJSONFences strips the markdown code fences models wrap JSON in.
func trimJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
