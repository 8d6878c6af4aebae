package backend

import (
	"log/slog"
	"slices"

	"github.com/nadzzz/copilot/internal/config"
)

// Registry holds the available adapters and the provider priority list.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	adapters map[Kind]Adapter
	priority []string
}

// NewRegistry builds a registry from ready-made adapters. A later adapter of
// the same kind replaces an earlier one.
func NewRegistry(priority []string, adapters ...Adapter) *Registry {
	m := make(map[Kind]Adapter, len(adapters))
	for _, a := range adapters {
		if a == nil {
			continue
		}
		m[a.Kind()] = a
	}
	return &Registry{
		adapters: m,
		priority: slices.Clone(priority),
	}
}

// FromConfig constructs an adapter for every configured backend. A backend
// that is missing credentials or fails to initialize is logged and left out;
// it never prevents the others from starting.
func FromConfig(cfg config.BackendsConfig) *Registry {
	var adapters []Adapter
	for _, kind := range Kinds {
		h, ok, reason := handleFor(kind, cfg)
		if !ok {
			slog.Info("backend unavailable", "backend", kind, "reason", reason)
			continue
		}
		a, err := newAdapter(h)
		if err != nil {
			slog.Error("backend initialization failed", "backend", kind, "error", err)
			continue
		}
		slog.Info("backend client initialized", "backend", kind, "model", h.Model, "timeout", h.Timeout)
		adapters = append(adapters, a)
	}

	priority := ParsePriority(cfg.Providers)
	slog.Info("provider priority", "providers", priority)
	return NewRegistry(priority, adapters...)
}

// Priority returns a copy of the provider priority list.
func (r *Registry) Priority() []string {
	return slices.Clone(r.priority)
}

// Adapter returns the adapter for kind if that backend is available.
func (r *Registry) Adapter(kind Kind) (Adapter, bool) {
	a, ok := r.adapters[kind]
	return a, ok
}

// Available reports whether kind has an adapter.
func (r *Registry) Available(kind Kind) bool {
	_, ok := r.adapters[kind]
	return ok
}

// Status describes one backend for health and CLI reporting.
type Status struct {
	Backend   Kind `json:"backend"`
	Available bool `json:"available"`
	// Position is the index in the priority list, or -1 if not listed.
	Position int `json:"position"`
}

// Status reports every known kind in declaration order.
func (r *Registry) Status() []Status {
	out := make([]Status, 0, len(Kinds))
	for _, kind := range Kinds {
		out = append(out, Status{
			Backend:   kind,
			Available: r.Available(kind),
			Position:  slices.Index(r.priority, string(kind)),
		})
	}
	return out
}
