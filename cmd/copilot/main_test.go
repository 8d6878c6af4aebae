package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/copilot/internal/answer"
	"github.com/nadzzz/copilot/internal/backend"
	"github.com/nadzzz/copilot/internal/config"
	"github.com/nadzzz/copilot/internal/dispatch"
	"github.com/nadzzz/copilot/internal/transport"
	httptransport "github.com/nadzzz/copilot/internal/transport/http"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	askModel, askServer = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

// isolate points the CLI at an empty working directory with every backend
// disabled.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, env := range []string{"GROQ_API_KEY", "XAI_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "AI_PROVIDERS"} {
		t.Setenv(env, "")
	}
	t.Setenv("MEMORY_SAVE_MODE", "true")
	return filepath.Join(dir, "missing.env")
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "copilot dev\n", out)
}

func TestAsk_LocalUsesBuiltInAnswers(t *testing.T) {
	envFile := isolate(t)

	out := execute(t, "ask", "--env-file", envFile, "what", "is", "eq", "in", "ableton")
	want, _ := answer.Canned("what is eq in ableton")
	assert.True(t, strings.HasPrefix(out, want+"\n"), out)
	assert.Contains(t, out, "(canned)")
}

func TestAsk_PreferredBackendGuidance(t *testing.T) {
	envFile := isolate(t)

	out := execute(t, "ask", "--env-file", envFile, "--model", "claude", "what is eq")
	assert.Contains(t, out, "ANTHROPIC_API_KEY")
	assert.Contains(t, out, "(unavailable)")
}

func TestAsk_Server(t *testing.T) {
	d := dispatch.New(answer.New(backend.NewRegistry(backend.ParsePriority(""))))
	srv := httptest.NewServer(httptransport.New(config.HTTPConfig{}).Handler(d.Handle))
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	out := execute(t, "ask", "--server", url, "reverb on vocals")
	want, _ := answer.Canned("reverb on vocals")
	assert.Contains(t, out, want)
	assert.Contains(t, out, "(canned)")
}

func TestWriteStatus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStatus(&buf, []backend.Status{
		{Backend: backend.KindGroq, Available: true, Position: 0},
		{Backend: backend.KindClaude, Available: false, Position: -1},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "groq")
	assert.Contains(t, lines[1], "GROQ_API_KEY")
	assert.Contains(t, lines[1], "available")
	assert.Contains(t, lines[2], "claude")
	assert.Contains(t, lines[2], "-")
	assert.Contains(t, lines[2], "unavailable")
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{}
	reg := backend.NewRegistry(backend.ParsePriority(""))
	d := dispatch.New(answer.New(reg))
	tr := httptransport.New(config.HTTPConfig{Host: "127.0.0.1", PortRange: 1})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, reg, d.Handle, []transport.Transport{tr}) }()

	require.Eventually(t, func() bool { return tr.Addr() != nil }, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Post("http://"+tr.Addr().String()+"/command", "application/json",
		strings.NewReader(`{"action":"explain_midi"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestEnabledTransports(t *testing.T) {
	got := enabledTransports(config.TransportsConfig{
		HTTP: config.HTTPConfig{Enabled: true},
		GRPC: config.GRPCConfig{Enabled: true},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "http", got[0].Name())
	assert.Equal(t, "grpc", got[1].Name())

	assert.Empty(t, enabledTransports(config.TransportsConfig{}))
}
