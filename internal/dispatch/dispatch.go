// Package dispatch maps inbound commands onto the answer engine.
//
// Every transport hands decoded commands to Dispatcher.Handle and sends back
// whatever reply it returns. Each command gets exactly one reply; a backend
// outage never surfaces as an error, only malformed input does.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nadzzz/copilot/internal/answer"
	"github.com/nadzzz/copilot/internal/message"
)

const (
	defaultTopic     = "general"
	defaultTrackName = "AI Track"

	helpMessage     = "Available commands: ask_ai, ableton_help, add_track, explain_midi"
	helpExplanation = "Use 'ask_ai' for general questions!"

	addTrackExplanation = "Audio track is a channel in Ableton for sounds (e.g. drums, vocals)."

	midiMessage     = "MIDI is a language for notes. E.g. number 60 is C4 (middle C on piano)."
	midiExplanation = "MIDI sends note and control signals, not sound – like instructions for instruments!"
)

// Resolver answers a question, optionally starting with a preferred backend.
type Resolver interface {
	Resolve(ctx context.Context, question, preferred string) answer.Result
}

// Dispatcher is the command routing engine.
type Dispatcher struct {
	resolver Resolver
}

// New creates a Dispatcher over resolver.
func New(resolver Resolver) *Dispatcher {
	return &Dispatcher{resolver: resolver}
}

// Handle processes one command. The returned error is non-nil only when the
// command itself is malformed; the caller turns it into an error reply.
func (d *Dispatcher) Handle(ctx context.Context, cmd *message.Command) (*message.Reply, error) {
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	start := time.Now()
	logger := slog.With("command_id", cmd.ID, "action", cmd.Action)
	logger.Info("command received", "params", len(cmd.Params))

	reply, err := d.handle(ctx, cmd)
	if err != nil {
		logger.Warn("command rejected", "error", err)
		return nil, err
	}

	logger.Info("command complete", "duration", time.Since(start), "source", reply.Source)
	return reply, nil
}

func (d *Dispatcher) handle(ctx context.Context, cmd *message.Command) (*message.Reply, error) {
	switch cmd.Action {
	case message.ActionAskAI:
		question, err := cmd.StringParam("question", "")
		if err != nil {
			return nil, err
		}
		preferred, err := cmd.StringParam("preferred_model", "")
		if err != nil {
			return nil, err
		}
		return d.ask(ctx, question, preferred, message.TypeAIAnswer), nil

	case message.ActionAbletonHelp:
		topic, err := cmd.StringParam("topic", defaultTopic)
		if err != nil {
			return nil, err
		}
		question := fmt.Sprintf("Explain %s in Ableton Live production", topic)
		return d.ask(ctx, question, "", message.TypeAbletonHelp), nil

	case message.ActionAddTrack:
		name, err := cmd.StringParam("name", defaultTrackName)
		if err != nil {
			return nil, err
		}
		return &message.Reply{
			Message:     "Adding audio track: " + name,
			Explanation: addTrackExplanation,
		}, nil

	case message.ActionExplainMIDI:
		return &message.Reply{Message: midiMessage, Explanation: midiExplanation}, nil

	default:
		return &message.Reply{Message: helpMessage, Explanation: helpExplanation}, nil
	}
}

func (d *Dispatcher) ask(ctx context.Context, question, preferred, replyType string) *message.Reply {
	res := d.resolver.Resolve(ctx, question, preferred)
	return &message.Reply{
		Message: res.Message,
		Type:    replyType,
		Source:  string(res.Kind),
		Backend: string(res.Backend),
	}
}
