// Package ai wraps the text-completion collaborator used by the WCAG
// AI-assisted tests.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

// Completer is the one capability the audit router needs from an AI
// service: turn a prompt pair into free-form text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Settings tune the underlying model calls.
type Settings struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// DefaultSettings favor a fast, cheap model; an audit makes one call per
// AI-assisted criterion.
func DefaultSettings() Settings {
	return Settings{
		Model:       "claude-3-5-haiku-20241022",
		MaxTokens:   2048,
		Temperature: 0.0,
	}
}

// Client is a Completer backed by the Anthropic API.
type Client struct {
	apiKey   string
	settings Settings
}

// NewClient creates a Client. apiKey must be non-empty.
func NewClient(apiKey string, settings Settings) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("ai: missing API key")
	}
	if settings.Model == "" {
		settings = DefaultSettings()
	}
	return &Client{apiKey: apiKey, settings: settings}, nil
}

// Complete sends one prompt pair and returns the model's text. The
// underlying SDK call is not context-aware, so it runs in a goroutine and
// the caller's deadline wins; an abandoned call finishes in the background
// and its result is dropped.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)

	go func() {
		settings := types.RequestSettings{
			Model:       c.settings.Model,
			MaxTokens:   c.settings.MaxTokens,
			Temperature: c.settings.Temperature,
		}
		resp, err := anthropic.PromptWithSettings(system, user, "", c.apiKey, settings)
		if err != nil {
			ch <- outcome{err: fmt.Errorf("completion request: %w", err)}
			return
		}
		if len(resp.Content) == 0 {
			ch <- outcome{err: errors.New("completion response has no content")}
			return
		}
		ch <- outcome{text: resp.Content[0].Text}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case out := <-ch:
		return out.text, out.err
	}
}
