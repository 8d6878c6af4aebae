package client

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/copilot/internal/config"
	"github.com/nadzzz/copilot/internal/message"
	httptransport "github.com/nadzzz/copilot/internal/transport/http"
)

func serve(t *testing.T, h func(context.Context, *message.Command) (*message.Reply, error)) string {
	t.Helper()
	srv := httptest.NewServer(httptransport.New(config.HTTPConfig{}).Handler(h))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestAsk(t *testing.T) {
	t.Parallel()

	url := serve(t, func(_ context.Context, cmd *message.Command) (*message.Reply, error) {
		q, _ := cmd.StringParam("question", "")
		m, _ := cmd.StringParam("preferred_model", "")
		return &message.Reply{Message: q + "|" + m, Type: message.TypeAIAnswer}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := Dial(ctx, url)
	require.NoError(t, err)
	defer c.Close()

	reply, err := c.Ask(ctx, "what is eq", "groq")
	require.NoError(t, err)
	assert.Equal(t, "what is eq|groq", reply.Message)

	reply, err = c.Ask(ctx, "second", "")
	require.NoError(t, err)
	assert.Equal(t, "second|", reply.Message)
}

func TestDo_ErrorReply(t *testing.T) {
	t.Parallel()

	url := serve(t, func(_ context.Context, cmd *message.Command) (*message.Reply, error) {
		q, err := cmd.StringParam("question", "")
		if err != nil {
			return nil, err
		}
		return &message.Reply{Message: q}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := Dial(ctx, url)
	require.NoError(t, err)
	defer c.Close()

	reply, err := c.Do(ctx, &message.Command{Action: "ask_ai", Params: map[string]any{"question": 1}})
	require.Error(t, err)
	assert.NotEmpty(t, reply.Error)
}

func TestDo_ContextCancelled(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	url := serve(t, func(ctx context.Context, _ *message.Command) (*message.Reply, error) {
		select {
		case <-block:
		case <-ctx.Done():
		}
		return &message.Reply{Message: "late"}, nil
	})

	c, err := Dial(context.Background(), url)
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Ask(ctx, "slow", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDial_Refused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nil)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	srv.Close()

	_, err := Dial(context.Background(), url)
	assert.Error(t, err)
}
