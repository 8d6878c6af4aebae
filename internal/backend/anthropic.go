package backend

import (
	"context"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// messagesClient calls the Anthropic Messages API.
type messagesClient struct {
	client  anthropic.Client
	model   string
	persona string
}

func newMessagesClient(h Handle) (*messagesClient, error) {
	if !validKey(h.APIKey) {
		return nil, NewConfigError("%s contains whitespace or control characters", h.Kind.CredentialEnv())
	}
	if h.Model == "" {
		return nil, NewConfigError("%s model is empty", h.Kind)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(h.APIKey),
		option.WithMaxRetries(0),
	}
	if h.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(h.Endpoint))
	}

	return &messagesClient{
		client:  anthropic.NewClient(opts...),
		model:   h.Model,
		persona: h.Persona,
	}, nil
}

func (c *messagesClient) complete(ctx context.Context, question string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(question)),
		},
	}
	if c.persona != "" {
		params.System = []anthropic.TextBlockParam{{Text: c.persona}}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude messages: %w", err)
	}
	if message == nil {
		return "", fmt.Errorf("claude returned nil message: %w", ErrEmptyResponse)
	}

	// First text block wins; tool and thinking blocks are never requested.
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			return text.Text, nil
		}
	}
	return "", fmt.Errorf("claude returned no text block: %w", ErrEmptyResponse)
}
