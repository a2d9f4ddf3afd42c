// Package ai talks to the OpenAI chat completions API to classify news
// content and to answer chat questions about the platform.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/truthguard/internal/config"
	"github.com/msomdec/truthguard/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

const temperature = 0.7

var errNoChoices = errors.New("completion returned no choices")

// Client wraps an OpenAI client. A Client built without an API key is valid
// but every call fails with domain.ErrNotConfigured.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// New creates a Client from the AI section of the configuration.
func New(cfg config.AIConfig) *Client {
	c := &Client{model: cfg.Model, timeout: cfg.Timeout}
	if cfg.APIKey == "" {
		return c
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	c.api = openai.NewClientWithConfig(oc)
	return c
}

// complete sends one chat completion request and returns the trimmed text of
// the first choice.
func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage, maxTokens int) (string, error) {
	if c.api == nil {
		return "", domain.ErrNotConfigured
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
