package backend

import (
	"strings"
	"time"
	"unicode"

	"github.com/nadzzz/copilot/internal/config"
)

// Handle describes one configured backend. It is built once at startup and
// never modified.
type Handle struct {
	Kind     Kind
	Endpoint string // base URL; empty means the SDK default
	APIKey   string
	Model    string
	Persona  string
	Timeout  time.Duration
}

// handleFor builds the handle for kind from configuration. The second return
// is false when the backend is not configured, in which case reason says why.
func handleFor(kind Kind, cfg config.BackendsConfig) (Handle, bool, string) {
	switch kind {
	case KindOllama:
		if cfg.Ollama.Disabled {
			return Handle{}, false, "disabled by configuration"
		}
		return Handle{
			Kind:     kind,
			Endpoint: cfg.Ollama.Endpoint,
			Model:    cfg.Ollama.Model,
			Persona:  cfg.Ollama.Persona,
			Timeout:  cfg.Ollama.Timeout(),
		}, true, ""
	case KindGroq:
		return cloudHandle(kind, cfg.Groq)
	case KindGrok:
		return cloudHandle(kind, cfg.Grok)
	case KindClaude:
		return cloudHandle(kind, cfg.Claude)
	case KindOpenAI:
		return cloudHandle(kind, cfg.OpenAI)
	default:
		return Handle{}, false, "unknown backend"
	}
}

func cloudHandle(kind Kind, cfg config.CloudConfig) (Handle, bool, string) {
	if !credentialPresent(kind, cfg.APIKey) {
		return Handle{}, false, kind.CredentialEnv() + " not set"
	}
	return Handle{
		Kind:     kind,
		Endpoint: cfg.BaseURL,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Persona:  cfg.Persona,
		Timeout:  cfg.Timeout(),
	}, true, ""
}

// credentialPresent reports whether key is set and is not the placeholder
// copied from the example .env file.
func credentialPresent(kind Kind, key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != kind.placeholder()
}

// validKey rejects keys that cannot be sent in an Authorization header.
func validKey(key string) bool {
	return !strings.ContainsFunc(key, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}
