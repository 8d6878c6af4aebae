package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want *Command
	}{
		{
			name: "object",
			in:   `{"action":"ask_ai","params":{"question":"what is eq","preferred_model":"groq"}}`,
			want: &Command{Action: "ask_ai", Params: map[string]any{"question": "what is eq", "preferred_model": "groq"}},
		},
		{
			name: "string wrapping object",
			in:   `"{\"action\":\"explain_midi\"}"`,
			want: &Command{Action: "explain_midi"},
		},
		{
			name: "id kept",
			in:   `{"id":"abc","action":"add_track","params":{"name":"Drums"}}`,
			want: &Command{ID: "abc", Action: "add_track", Params: map[string]any{"name": "Drums"}},
		},
		{
			name: "null params",
			in:   `{"action":"ableton_help","params":null}`,
			want: &Command{Action: "ableton_help"},
		},
		{
			name: "missing action",
			in:   `{"params":{}}`,
			want: &Command{Params: map[string]any{}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Decode([]byte(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		``,
		`   `,
		`{not json`,
		`[1,2]`,
		`"just a string"`,
		`{"action":"ask_ai","params":"question"}`,
		`{"action":"ask_ai","params":[1]}`,
		`{"action":42}`,
	} {
		_, err := Decode([]byte(in))
		assert.ErrorIs(t, err, ErrMalformed, "%q", in)
	}
}

func TestStringParam(t *testing.T) {
	t.Parallel()

	cmd := &Command{Params: map[string]any{"question": "hi", "topic": nil, "name": 3.0}}

	got, err := cmd.StringParam("question", "")
	require.NoError(t, err)
	assert.Equal(t, "hi", got)

	got, err = cmd.StringParam("topic", "general")
	require.NoError(t, err)
	assert.Equal(t, "general", got)

	got, err = cmd.StringParam("missing", "AI Track")
	require.NoError(t, err)
	assert.Equal(t, "AI Track", got)

	_, err = cmd.StringParam("name", "AI Track")
	assert.ErrorIs(t, err, ErrMalformed)

	var empty Command
	got, err = empty.StringParam("question", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReplyJSONOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(&Reply{Message: "MIDI is a language for notes.", Explanation: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"MIDI is a language for notes.","explanation":"x"}`, string(b))

	b, err = json.Marshal(ErrorReply(ErrMalformed))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"malformed command"}`, string(b))
}
