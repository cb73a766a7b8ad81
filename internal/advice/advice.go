// Package advice produces a natural-language advisory from the current
// account and transaction lists via a single text-generation call. Every
// failure path degrades to a fixed message; the caller never sees an error.
package advice

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"kakeibo/internal/core"
	"kakeibo/internal/log"
)

const (
	// DisabledMessage is returned when no API key is configured.
	DisabledMessage = "AIアドバイスは無効です。GEMINI_API_KEY を設定すると利用できます。"
	// UnavailableMessage is returned on any request failure.
	UnavailableMessage = "アドバイスは一時的に利用できません。しばらくしてからもう一度お試しください。"
)

type generateFunc func(ctx context.Context, prompt string) (string, error)

type Client struct {
	model        string
	logger       *log.Logger
	generate     generateFunc // nil when no key is configured
	disabledOnce sync.Once
}

// New builds the advice client. An empty apiKey is not an error: the
// feature is disabled and Advise returns the fixed message without any
// network activity.
func New(apiKey, model string, logger *log.Logger) *Client {
	c := &Client{
		model:  model,
		logger: logger.WithComponent(log.ComponentAdvice),
	}
	if apiKey == "" {
		return c
	}
	c.generate = func(ctx context.Context, prompt string) (string, error) {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return "", fmt.Errorf("create genai client: %w", err)
		}
		contents := []*genai.Content{
			{
				Role:  "user",
				Parts: []*genai.Part{{Text: prompt}},
			},
		}
		resp, err := client.Models.GenerateContent(ctx, c.model, contents, nil)
		if err != nil {
			return "", fmt.Errorf("generate content: %w", err)
		}
		text := resp.Text()
		if text == "" {
			return "", fmt.Errorf("empty response from model")
		}
		return text, nil
	}
	return c
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool { return c.generate != nil }

// Advise returns the model's advisory text verbatim, or one of the fixed
// fallback strings. No retries; the underlying error is only logged.
func (c *Client) Advise(ctx context.Context, accounts []core.Account, txns []core.Transaction) string {
	if c.generate == nil {
		c.disabledOnce.Do(func() {
			c.logger.Info("advice disabled: no API key configured")
		})
		return DisabledMessage
	}

	text, err := c.generate(ctx, buildPrompt(accounts, txns))
	if err != nil {
		c.logger.ErrorContext(ctx, "advice request failed", log.FieldError, err)
		return UnavailableMessage
	}
	return text
}
