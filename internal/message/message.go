// Package message defines the command and reply types exchanged with the
// Ableton client over every transport.
package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Action names understood by the dispatcher.
const (
	ActionAskAI       = "ask_ai"
	ActionAbletonHelp = "ableton_help"
	ActionAddTrack    = "add_track"
	ActionExplainMIDI = "explain_midi"
)

// Reply types.
const (
	TypeAIAnswer    = "ai_answer"
	TypeAbletonHelp = "ableton_help"
)

// ErrMalformed wraps every decoding problem with an inbound command.
var ErrMalformed = errors.New("malformed command")

// Command is one inbound request.
type Command struct {
	// ID correlates the command in logs. Assigned by the dispatcher when empty.
	ID string `json:"id,omitempty"`

	// Action selects the operation (e.g., "ask_ai", "ableton_help").
	Action string `json:"action"`

	// Params holds action-specific parameters such as "question",
	// "preferred_model", "topic", or "name".
	Params map[string]any `json:"params,omitempty"`
}

// Decode parses a command. The payload is either a JSON object or a JSON
// string whose content is that object, as some Socket.IO era clients send it.
func Decode(data []byte) (*Command, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		data = bytes.TrimSpace([]byte(inner))
	}

	var raw struct {
		ID     string          `json:"id"`
		Action *string         `json:"action"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	cmd := &Command{ID: raw.ID}
	if raw.Action != nil {
		cmd.Action = *raw.Action
	}

	if len(raw.Params) > 0 && !bytes.Equal(raw.Params, []byte("null")) {
		if err := json.Unmarshal(raw.Params, &cmd.Params); err != nil {
			return nil, fmt.Errorf("%w: params must be an object", ErrMalformed)
		}
	}
	return cmd, nil
}

// StringParam returns params[key] as a string. A missing or null value yields
// def. Any other non-string value is an error.
func (c *Command) StringParam(key, def string) (string, error) {
	v, ok := c.Params[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: param %q must be a string, got %T", ErrMalformed, key, v)
	}
	return s, nil
}

// Reply is the single response produced for every command.
type Reply struct {
	// Message is the human-readable answer or status text.
	Message string `json:"message,omitempty"`

	// Type tags AI replies ("ai_answer", "ableton_help").
	Type string `json:"type,omitempty"`

	// Explanation is a short teaching note for static replies.
	Explanation string `json:"explanation,omitempty"`

	// Source tells how an AI answer was produced ("from_backend", "canned",
	// "all_failed", "unavailable").
	Source string `json:"source,omitempty"`

	// Backend names the backend that answered, when one did.
	Backend string `json:"backend,omitempty"`

	// Error is set instead of Message when the command could not be processed.
	Error string `json:"error,omitempty"`
}

// ErrorReply wraps err for the caller.
func ErrorReply(err error) *Reply {
	return &Reply{Error: err.Error()}
}
