package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	maxTokens   = 500
	temperature = 0.7

	previewLen = 50
)

// Adapter asks one backend a question. Ask never fails past its boundary:
// every transport, authentication, and decoding problem is logged and
// reported as ok == false.
type Adapter interface {
	Kind() Kind
	Timeout() time.Duration
	Ask(ctx context.Context, question string) (answer string, ok bool)
}

// completer is the SDK-specific call behind an adapter.
type completer interface {
	complete(ctx context.Context, question string) (string, error)
}

// adapter wraps a completer with the uniform logging and error absorption.
type adapter struct {
	handle Handle
	client completer
}

func newAdapter(h Handle) (*adapter, error) {
	var (
		c   completer
		err error
	)
	switch h.Kind {
	case KindOllama:
		c, err = newOllamaClient(h)
	case KindGroq, KindGrok, KindOpenAI:
		c, err = newChatClient(h)
	case KindClaude:
		c, err = newMessagesClient(h)
	default:
		err = NewConfigError("unsupported backend %q", h.Kind)
	}
	if err != nil {
		return nil, err
	}
	return &adapter{handle: h, client: c}, nil
}

func (a *adapter) Kind() Kind { return a.handle.Kind }

func (a *adapter) Timeout() time.Duration { return a.handle.Timeout }

func (a *adapter) Ask(ctx context.Context, question string) (answer string, ok bool) {
	logger := slog.With("backend", a.handle.Kind, "model", a.handle.Model)
	logger.Info("asking backend", "question", preview(question))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("backend panicked", "panic", r)
			answer, ok = "", false
		}
	}()

	start := time.Now()
	text, err := a.call(ctx, question)
	if err != nil {
		logger.Warn("backend gave no answer",
			"failure", Classify(err),
			"duration", time.Since(start),
			"error", err)
		if a.handle.Kind == KindOllama && Classify(err) == FailureTransport {
			logger.Info("is 'ollama serve' running?", "endpoint", a.handle.Endpoint)
		}
		return "", false
	}

	logger.Info("backend responded", "duration", time.Since(start), "answer", preview(text))
	return text, true
}

func (a *adapter) call(ctx context.Context, question string) (string, error) {
	if a.client == nil {
		return "", ErrNotInitialized
	}
	text, err := a.client.complete(ctx, question)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			return "", fmt.Errorf("%w: %v", ctxErr, err)
		}
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// preview truncates s to a short single-line form for logs.
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= previewLen {
		return s
	}
	return string(r[:previewLen]) + "..."
}
