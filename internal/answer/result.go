package answer

import "github.com/nadzzz/copilot/internal/backend"

// Kind tags how a Result was produced.
type Kind string

const (
	// KindBackend means a backend answered; Result.Backend names it.
	KindBackend Kind = "from_backend"

	// KindCanned means every backend fell through and a canned rule matched.
	KindCanned Kind = "canned"

	// KindAllFailed means every backend fell through and no canned rule matched.
	KindAllFailed Kind = "all_failed"

	// KindUnavailable means the caller asked for a specific backend that is
	// not configured; Result.Message carries the setup guidance.
	KindUnavailable Kind = "unavailable"
)

// Result is the outcome of one resolution. It is built per request.
type Result struct {
	Message string
	Kind    Kind
	Backend backend.Kind
}
