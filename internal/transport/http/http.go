// Package http implements the HTTP/WebSocket transport for copilot.
//
// This transport exposes a REST endpoint for one-shot commands and a
// WebSocket endpoint that the Ableton client keeps open for a whole session.
// Every inbound frame receives exactly one reply frame.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/nadzzz/copilot/docs" // registers the OpenAPI document served under /swagger/
	"github.com/nadzzz/copilot/internal/config"
	"github.com/nadzzz/copilot/internal/message"
	"github.com/nadzzz/copilot/internal/transport"
)

// maxBody caps a single command payload.
const maxBody = 1 << 20

// Transport implements transport.Transport over HTTP and WebSocket.
type Transport struct {
	cfg      config.HTTPConfig
	upgrader websocket.Upgrader

	mu     sync.Mutex
	server *http.Server
	addr   net.Addr
}

// New creates a new HTTP transport.
func New(cfg config.HTTPConfig) *Transport {
	return &Transport{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The Ableton client and browser tools connect from any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Handler builds the request router around handler.
func (t *Transport) Handler(handler transport.Handler) http.Handler {
	mux := http.NewServeMux()

	// POST /command: one JSON command in, one JSON reply out.
	mux.HandleFunc("POST /command", func(w http.ResponseWriter, r *http.Request) {
		t.handleCommand(w, r, handler)
	})

	// GET /ws: long-lived session, one reply frame per command frame.
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		t.handleWebSocket(w, r, handler)
	})

	// Swagger UI serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return mux
}

// Listen binds the first free port in the configured range and serves until
// the context is cancelled.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	lis, err := listenFirstFree(t.cfg.Host, t.cfg.Port, t.cfg.PortRange)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}

	srv := &http.Server{
		Handler:           t.Handler(handler),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	t.mu.Lock()
	t.server = srv
	t.addr = lis.Addr()
	t.mu.Unlock()

	slog.Info("http transport listening", "addr", lis.Addr().String())

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	return nil
}

// Addr returns the bound address once Listen has started, or nil.
func (t *Transport) Addr() net.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.addr
}

// handleCommand processes a POST /command request.
//
// @Summary     Run a copilot command
// @Description Accepts a command object (or a JSON string holding one). "ask_ai" and "ableton_help"
// @Description are answered by the first available AI backend in priority order, falling back to
// @Description built-in Ableton answers. "add_track" and "explain_midi" return static replies.
// @Tags        command
// @Accept      json
// @Produce     json
// @Param       command  body      message.Command  true  "Command to run"
// @Success     200      {object}  message.Reply    "Reply"
// @Failure     400      {object}  message.Reply    "Malformed command"
// @Router      /command [post]
func (t *Transport) handleCommand(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		writeReply(w, http.StatusBadRequest, message.ErrorReply(fmt.Errorf("reading body: %w", err)))
		return
	}
	if len(body) > maxBody {
		writeReply(w, http.StatusRequestEntityTooLarge, message.ErrorReply(errors.New("command too large")))
		return
	}

	reply := transport.Process(r.Context(), handler, body)
	status := http.StatusOK
	if reply.Error != "" {
		status = http.StatusBadRequest
	}
	writeReply(w, status, reply)
}

// handleWebSocket upgrades GET /ws and answers each text frame in order.
//
// @Summary     Command session over WebSocket
// @Description Each text frame carries one command; each command gets one reply frame.
// @Tags        command
// @Success     101  {string}  string  "Switching Protocols"
// @Router      /ws [get]
func (t *Transport) handleWebSocket(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBody)

	ctx := r.Context()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	remote := conn.RemoteAddr().String()
	slog.Info("copilot client connected", "remote", remote)
	defer slog.Info("copilot client disconnected", "remote", remote)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
				slog.Debug("websocket read ended", "remote", remote, "error", err)
			}
			return
		}
		if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
			continue
		}

		reply := transport.Process(ctx, handler, data)
		if err := conn.WriteJSON(reply); err != nil {
			slog.Warn("websocket write failed", "remote", remote, "error", err)
			return
		}
		slog.Debug("reply sent", "remote", remote, "message", truncate(reply.Message, 100))
	}
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	t.mu.Lock()
	srv := t.server
	t.mu.Unlock()
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// listenFirstFree binds the first free port in [port, port+n).
func listenFirstFree(host string, port, n int) (net.Listener, error) {
	if n < 1 {
		n = 1
	}
	var lastErr error
	for p := port; p < port+n; p++ {
		lis, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(p)))
		if err == nil {
			return lis, nil
		}
		lastErr = err
		slog.Debug("port busy", "port", p, "error", err)
	}
	return nil, fmt.Errorf("no free port in %d-%d: %w", port, port+n-1, lastErr)
}

func writeReply(w http.ResponseWriter, status int, reply *message.Reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reply)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
