package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// ollamaClient calls a local Ollama server through /api/generate.
type ollamaClient struct {
	client  *api.Client
	model   string
	persona string
}

func newOllamaClient(h Handle) (*ollamaClient, error) {
	base, err := url.Parse(h.Endpoint)
	if err != nil {
		return nil, NewConfigError("invalid ollama endpoint %q: %v", h.Endpoint, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, NewConfigError("invalid ollama endpoint %q: scheme and host required", h.Endpoint)
	}
	if h.Model == "" {
		return nil, NewConfigError("ollama model is empty")
	}

	return &ollamaClient{
		client:  api.NewClient(base, &http.Client{}),
		model:   h.Model,
		persona: h.Persona,
	}, nil
}

func (c *ollamaClient) complete(ctx context.Context, question string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  c.model,
		Prompt: strings.TrimSpace(c.persona + " " + question),
		Stream: &stream,
	}

	var out strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return out.String(), nil
}
