// Package answer turns a free-text question into exactly one reply string.
//
// Backends are tried one at a time in priority order, optionally led by a
// caller-preferred backend. The first non-empty answer wins. When every
// backend falls through, a fixed table of canned Ableton answers is
// consulted, so Resolve always produces a message and never fails.
package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nadzzz/copilot/internal/backend"
)

// Engine runs the fallback protocol over a backend registry. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	registry *backend.Registry
	budget   time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithBudget caps the total time spent on backend attempts for one question.
// Zero or negative disables the cap; each attempt is then bounded only by its
// own backend timeout.
func WithBudget(d time.Duration) Option {
	return func(e *Engine) {
		e.budget = d
	}
}

// New creates an Engine over reg.
func New(reg *backend.Registry, opts ...Option) *Engine {
	e := &Engine{registry: reg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve answers question. preferred may be empty. Cancelling ctx aborts the
// in-flight backend call and skips the remaining ones; the canned matcher
// still produces the reply.
func (e *Engine) Resolve(ctx context.Context, question, preferred string) Result {
	preferred = strings.TrimSpace(preferred)
	log := slog.With("question", preview(question))
	if preferred != "" {
		log = log.With("preferred", preferred)
	}
	log.Info("resolving question")

	if e.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.budget)
		defer cancel()
	}

	for _, name := range AttemptList(e.registry.Priority(), preferred) {
		kind, known := backend.ParseKind(name)
		if !known {
			log.Debug("skipping unknown backend name", "backend", name)
			continue
		}

		a, ok := e.registry.Adapter(kind)
		if !ok {
			if name == preferred {
				log.Warn("preferred backend is not configured", "backend", kind)
				return Result{Message: kind.Guidance(), Kind: KindUnavailable, Backend: kind}
			}
			continue
		}

		if err := ctx.Err(); err != nil {
			log.Warn("resolution stopped before trying every backend", "next", kind, "error", err)
			break
		}

		if text, ok := e.attempt(ctx, a, question); ok {
			return Result{
				Message: fmt.Sprintf(">> [%s] %s", kind.Label(), text),
				Kind:    KindBackend,
				Backend: kind,
			}
		}
	}

	log.Warn("all backends failed, using canned answers")
	text, matched := Canned(question)
	if matched {
		return Result{Message: text, Kind: KindCanned}
	}
	return Result{Message: text, Kind: KindAllFailed}
}

func (e *Engine) attempt(ctx context.Context, a backend.Adapter, question string) (string, bool) {
	if t := a.Timeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	return a.Ask(ctx, question)
}

// preview shortens a question for log lines.
func preview(s string) string {
	const n = 50
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
