package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/copilot/internal/config"
	"github.com/nadzzz/copilot/internal/message"
)

// echoHandler replies with the action name and rejects "bad".
func echoHandler(_ context.Context, cmd *message.Command) (*message.Reply, error) {
	if cmd.Action == "bad" {
		return nil, errors.New("bad action")
	}
	return &message.Reply{Message: "got " + cmd.Action, Type: message.TypeAIAnswer}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	tr := New(config.HTTPConfig{Host: "127.0.0.1"})
	srv := httptest.NewServer(tr.Handler(echoHandler))
	t.Cleanup(srv.Close)
	return srv
}

func postCommand(t *testing.T, url, body string) (int, message.Reply) {
	t.Helper()
	resp, err := http.Post(url+"/command", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var reply message.Reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	return resp.StatusCode, reply
}

func TestCommandEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	status, reply := postCommand(t, srv.URL, `{"action":"ask_ai","params":{"question":"what is eq"}}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, message.Reply{Message: "got ask_ai", Type: message.TypeAIAnswer}, reply)

	status, reply = postCommand(t, srv.URL, `"{\"action\":\"explain_midi\"}"`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "got explain_midi", reply.Message)
}

func TestCommandEndpoint_Malformed(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	for _, body := range []string{`{oops`, `{"action":"ask_ai","params":"x"}`, `{"action":"bad"}`} {
		status, reply := postCommand(t, srv.URL, body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.NotEmpty(t, reply.Error, body)
		assert.Empty(t, reply.Message, body)
	}
}

func TestCommandEndpoint_TooLarge(t *testing.T) {
	t.Parallel()
	h := New(config.HTTPConfig{}).Handler(echoHandler)

	body := `{"action":"ask_ai","params":{"question":"` + strings.Repeat("a", maxBody) + `"}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCommandEndpoint_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/command")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWebSocket_OneReplyPerFrame(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	frames := []string{
		`{"action":"ask_ai","params":{"question":"q"}}`,
		`not json`,
		`{"action":"add_track"}`,
	}
	for _, f := range frames {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f)))
	}

	var replies []message.Reply
	for range frames {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var r message.Reply
		require.NoError(t, conn.ReadJSON(&r))
		replies = append(replies, r)
	}

	assert.Equal(t, "got ask_ai", replies[0].Message)
	assert.NotEmpty(t, replies[1].Error)
	assert.Equal(t, "got add_track", replies[2].Message)
}

func TestSwaggerDoc(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"/command"`)
}

func TestListenFirstFree(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	lis, err := listenFirstFree("127.0.0.1", port, 5)
	require.NoError(t, err)
	defer lis.Close()

	got := lis.Addr().(*net.TCPAddr).Port
	assert.Greater(t, got, port)
	assert.Less(t, got, port+5)

	_, err = listenFirstFree("127.0.0.1", port, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no free port in "+strconv.Itoa(port))
}

func TestListenAndClose(t *testing.T) {
	t.Parallel()

	tr := New(config.HTTPConfig{Host: "127.0.0.1", Port: 0, PortRange: 1})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- tr.Listen(ctx, echoHandler) }()

	require.Eventually(t, func() bool { return tr.Addr() != nil }, 5*time.Second, 10*time.Millisecond)

	status, reply := postCommand(t, "http://"+tr.Addr().String(), `{"action":"explain_midi"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "got explain_midi", reply.Message)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("http transport did not stop")
	}
}
