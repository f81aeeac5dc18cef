// Package llm wraps an OpenAI-compatible language model behind a single-prompt
// completion contract and holds the prompts used across the system.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer is the single-prompt completion contract consumed by the
// ingestion pipeline and the chat orchestrator.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is a Completer backed by an OpenAI-compatible chat API
// (Ollama, LocalAI, OpenAI). Every call is bounded by a timeout.
type Client struct {
	model   llms.Model
	timeout time.Duration
}

// New creates a client for the given OpenAI-compatible endpoint.
func New(baseURL, apiKey, model string, timeout time.Duration) (*Client, error) {
	// Local OpenAI-compatible services reject empty tokens
	token := apiKey
	if token == "" {
		token = "none"
	}

	m, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(token),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{model: m, timeout: timeout}, nil
}

// Complete runs a single completion and returns the trimmed response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(0.1))
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}
