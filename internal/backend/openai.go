package backend

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// chatClient calls an OpenAI-compatible Chat Completions API. Groq and xAI
// expose the same surface, so they differ from OpenAI only by base URL.
type chatClient struct {
	client  openai.Client
	kind    Kind
	model   string
	persona string
}

func newChatClient(h Handle) (*chatClient, error) {
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

	return &chatClient{
		client:  openai.NewClient(opts...),
		kind:    h.Kind,
		model:   h.Model,
		persona: h.Persona,
	}, nil
}

func (c *chatClient) complete(ctx context.Context, question string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.persona),
			openai.UserMessage(question),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.kind, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices: %w", c.kind, ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
