package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeClient implements Client for Anthropic's Claude
type ClaudeClient struct {
	client anthropic.Client
}

// NewClaudeClient creates a new Claude client
func NewClaudeClient(apiKey string) (*ClaudeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &ClaudeClient{client: client}, nil
}

// Generate sends a single-turn completion request and returns the first text block.
func (c *ClaudeClient) Generate(ctx context.Context, model, prompt, system string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: MaxOutputTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude request failed: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from claude")
	}

	for _, block := range message.Content {
		text := block.AsText()
		if text.Text != "" {
			return text.Text, nil
		}
	}

	return "", fmt.Errorf("no text block in claude response")
}
