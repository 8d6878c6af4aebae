package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

var (
	// ErrEmptyResponse means the backend answered with no usable text.
	ErrEmptyResponse = errors.New("empty response")

	// ErrNotInitialized means the adapter has no client.
	ErrNotInitialized = errors.New("client not initialized")
)

// ConfigError reports a backend that cannot be constructed from its settings.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return e.msg
}

func NewConfigError(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// Failure classifies why a backend attempt produced no answer.
type Failure string

const (
	FailureConfig    Failure = "configuration_missing"
	FailureTransport Failure = "transport"
	FailureTimeout   Failure = "timeout"
	FailureStatus    Failure = "bad_status"
	FailureMalformed Failure = "malformed_response"
)

// Classify maps an adapter error onto a Failure. A nil error has no failure.
func Classify(err error) Failure {
	if err == nil {
		return ""
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) || errors.Is(err, ErrNotInitialized) {
		return FailureConfig
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	var openaiErr *openai.Error
	var anthropicErr *anthropic.Error
	var ollamaErr api.StatusError
	if errors.As(err, &openaiErr) || errors.As(err, &anthropicErr) || errors.As(err, &ollamaErr) {
		return FailureStatus
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.Is(err, ErrEmptyResponse) || errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return FailureMalformed
	}

	return FailureTransport
}
