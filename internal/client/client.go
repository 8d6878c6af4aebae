// Package client talks to a running copilot daemon over its WebSocket
// endpoint.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nadzzz/copilot/internal/message"
)

// Client is a single WebSocket session. Requests are serialized; replies
// arrive in the order the commands were sent.
type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Dial connects to url (e.g. "ws://localhost:12345/ws").
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Do sends cmd and waits for its reply. Cancelling ctx aborts the wait and
// leaves the session unusable.
func (c *Client) Do(ctx context.Context, cmd *message.Command) (*message.Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetWriteDeadline(time.Now())
		_ = c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	if err := c.conn.WriteJSON(cmd); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("sending command: %w", ctxErr)
		}
		return nil, fmt.Errorf("sending command: %w", err)
	}

	var reply message.Reply
	if err := c.conn.ReadJSON(&reply); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("waiting for reply: %w", ctxErr)
		}
		return nil, fmt.Errorf("waiting for reply: %w", err)
	}
	if reply.Error != "" {
		return &reply, errors.New(reply.Error)
	}
	return &reply, nil
}

// Ask sends an ask_ai command.
func (c *Client) Ask(ctx context.Context, question, preferred string) (*message.Reply, error) {
	params := map[string]any{"question": question}
	if preferred != "" {
		params["preferred_model"] = preferred
	}
	return c.Do(ctx, &message.Command{Action: message.ActionAskAI, Params: params})
}

// Close ends the session with a normal closure.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}
