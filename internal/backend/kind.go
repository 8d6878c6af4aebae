// Package backend owns the answer backends: the closed set of backend kinds,
// their immutable handles, the SDK adapters that call them, and the registry
// that holds the available ones together with the fallback priority list.
//
// The set of kinds is fixed. Every switch over Kind in this package is
// exhaustive; adding a kind means touching each of them.
package backend

// Kind identifies one external answer source.
type Kind string

const (
	// KindOllama is the locally running model (no credential required).
	KindOllama Kind = "ollama"

	// KindGroq is the fast, free-tier cloud backend.
	KindGroq Kind = "groq"

	// KindGrok is xAI Grok, reached through its OpenAI-compatible API.
	KindGrok Kind = "grok"

	// KindClaude is Anthropic Claude.
	KindClaude Kind = "claude"

	// KindOpenAI is OpenAI.
	KindOpenAI Kind = "openai"
)

// Kinds lists every backend kind in declaration order.
var Kinds = []Kind{KindOllama, KindGroq, KindGrok, KindClaude, KindOpenAI}

// ParseKind maps a configuration name onto a Kind. Matching is exact.
func ParseKind(name string) (Kind, bool) {
	switch Kind(name) {
	case KindOllama, KindGroq, KindGrok, KindClaude, KindOpenAI:
		return Kind(name), true
	default:
		return "", false
	}
}

// Label is the attribution tag shown in front of an answer.
func (k Kind) Label() string {
	switch k {
	case KindOllama:
		return "Ollama"
	case KindGroq:
		return "Groq"
	case KindGrok:
		return "Grok"
	case KindClaude:
		return "Claude"
	case KindOpenAI:
		return "OpenAI"
	default:
		return string(k)
	}
}

// CredentialEnv names the environment variable that enables the backend.
func (k Kind) CredentialEnv() string {
	switch k {
	case KindOllama:
		return "MEMORY_SAVE_MODE"
	case KindGroq:
		return "GROQ_API_KEY"
	case KindGrok:
		return "XAI_API_KEY"
	case KindClaude:
		return "ANTHROPIC_API_KEY"
	case KindOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// Guidance is the message returned when a caller explicitly asks for this
// backend but it is not configured.
func (k Kind) Guidance() string {
	switch k {
	case KindOllama:
		return ">> ERROR Ollama is disabled (MEMORY_SAVE_MODE=true). Unset MEMORY_SAVE_MODE, start it with 'ollama serve', or switch to Groq (free)"
	case KindGroq:
		return ">> ERROR Groq needs an API key in GROQ_API_KEY. It's free at https://console.groq.com/keys - add it to your .env file"
	case KindGrok:
		return ">> ERROR xAI Grok requires paid API key in XAI_API_KEY. Get credits at https://console.x.ai/ or switch to Groq (free)"
	case KindClaude:
		return ">> ERROR Claude requires paid API key in ANTHROPIC_API_KEY. Get one at https://console.anthropic.com/ or switch to Groq (free)"
	case KindOpenAI:
		return ">> ERROR OpenAI requires paid API key in OPENAI_API_KEY. Get one at https://platform.openai.com/ or switch to Groq (free)"
	default:
		return ">> ERROR unknown backend " + string(k)
	}
}

// placeholder returns the sentinel value shipped in the example .env file.
func (k Kind) placeholder() string {
	switch k {
	case KindGroq:
		return "your_groq_api_key_here"
	case KindGrok:
		return "your_xai_api_key_here"
	case KindClaude:
		return "your_anthropic_api_key_here"
	case KindOpenAI:
		return "your_openai_api_key_here"
	default:
		return ""
	}
}
