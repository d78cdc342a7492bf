// Package llm implements the LLM collaborator against an OpenAI-compatible
// chat completion endpoint (Groq in production).
package llm

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"portfolio-backend/internal/apperr"
)

// Sampling parameters kept low and bounded: answers should stay grounded
// in the supplied context.
const (
	temperature = 0.2
	maxTokens   = 1000
)

type Client struct {
	api    *openai.Client
	model  string
	logger *zap.Logger
}

func NewClient(apiKey, baseURL, model string, logger *zap.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:    openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Complete sends one chat completion request and returns the answer text.
// No retries; the failure classification is the caller's signal.
func (c *Client) Complete(ctx context.Context, systemPrompt, question string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", apperr.Errorf(apperr.KindUnavailable, "llm returned no answer")
	}

	c.logger.Debug("llm completion",
		zap.String("model", c.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// classify maps client failures onto the pipeline taxonomy. Invalid
// credentials are Auth; everything else, including the provider rejecting
// an oversized prompt, is Unavailable: the caller cannot fix those by
// rephrasing the question.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.Errorf(apperr.KindUnavailable, "llm request timed out: %w", err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperr.Errorf(apperr.KindAuth, "llm credentials rejected: %w", err)
		}
		return apperr.Errorf(apperr.KindUnavailable, "llm request failed: %w", err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperr.Errorf(apperr.KindAuth, "llm credentials rejected: %w", err)
		}
	}

	return apperr.Errorf(apperr.KindUnavailable, "llm request failed: %w", err)
}
