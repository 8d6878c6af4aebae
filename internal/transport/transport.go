// Package transport defines the interface for pluggable command transports.
//
// Each transport (HTTP/WebSocket, gRPC) implements this interface and hands
// every inbound command to the dispatcher's Handler. The dispatcher doesn't
// care how commands arrive; it only works with the Transport contract.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nadzzz/copilot/internal/message"
)

// Handler processes one decoded command and returns its reply. A non-nil
// error means the command was malformed.
type Handler func(ctx context.Context, cmd *message.Command) (*message.Reply, error)

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "grpc", "http").
	Name() string

	// Listen starts accepting commands and dispatches them to the handler.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}

// ErrInternal is reported to the caller when a handler panics.
var ErrInternal = errors.New("internal error")

// Process decodes raw and runs it through h. It always returns exactly one
// reply; decoding failures, handler errors and panics become error replies.
func Process(ctx context.Context, h Handler, raw []byte) *message.Reply {
	cmd, err := message.Decode(raw)
	if err != nil {
		return message.ErrorReply(err)
	}
	return Run(ctx, h, cmd)
}

// Run is Process for an already decoded command.
func Run(ctx context.Context, h Handler, cmd *message.Command) (reply *message.Reply) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("command handler panicked", "panic", r)
			reply = message.ErrorReply(fmt.Errorf("%w: %v", ErrInternal, r))
		}
	}()

	reply, err := h(ctx, cmd)
	if err != nil {
		return message.ErrorReply(err)
	}
	if reply == nil {
		return message.ErrorReply(ErrInternal)
	}
	return reply
}
