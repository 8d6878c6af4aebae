package answer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func textOf(name string) string {
	for _, r := range cannedRules {
		if r.name == name {
			return r.text
		}
	}
	return ""
}

func TestCanned(t *testing.T) {
	t.Parallel()

	tests := []struct {
		question string
		rule     string
	}{
		{"what is eq in ableton", "eq"},
		{"How do I open the Arrangement View?", "arrangement_view"},
		{"kako da otvorim arranged view", "arrangement_view"},
		{"otvaram session view", "arrangement_view"},
		{"what does the TAB key do", "arrangement_view"},
		{"what is session view", "session_view"},
		{"Session and clip view", "session_view"},
		{"glue compression on drums", "compressor"},
		{"add reverb to vocals", "reverb"},
		{"ping pong delay", "delay"},
		{"što je MIDI", "midi"},
		{"what is midi", "midi"},
		{"I'm a beginner", "beginner"},
		{"ne znam ništa", "beginner"},
		{"kako napraviti ritam", "beat"},
		{"kako snimiti gitaru", "record"},
		{"record audio from a mic", "record"},
		{"where is the browser", "browser"},
		{"kako naći sound", "browser"},
	}

	for _, tc := range tests {
		t.Run(tc.question, func(t *testing.T) {
			t.Parallel()
			got, matched := Canned(tc.question)
			assert.True(t, matched)
			assert.Equal(t, textOf(tc.rule), got)
			assert.True(t, strings.HasPrefix(got, ">> "))
		})
	}
}

func TestCanned_OrderResolvesOverlaps(t *testing.T) {
	t.Parallel()

	// "eq" wins over "compressor" and "session view" wins over "reverb"
	// because of table order.
	got, _ := Canned("eq and compressor in ableton")
	assert.Equal(t, textOf("eq"), got)

	got, _ = Canned("session view reverb")
	assert.Equal(t, textOf("session_view"), got)

	// "midi" alone is not enough.
	got, matched := Canned("midi controller setup")
	assert.False(t, matched)
	assert.Equal(t, NoBackendMessage, got)
}

func TestCanned_NoMatch(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"", "tell me a joke", "   "} {
		got, matched := Canned(q)
		assert.False(t, matched, q)
		assert.Equal(t, NoBackendMessage, got)
	}
}

func TestCanned_Deterministic(t *testing.T) {
	t.Parallel()

	first, _ := Canned("what is eq in ableton")
	for range 5 {
		again, _ := Canned("what is eq in ableton")
		assert.Equal(t, first, again)
	}
	assert.True(t, strings.HasPrefix(first, ">> EQ (Equalizer)"))
}
