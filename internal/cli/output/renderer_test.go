package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode_Explicit(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, ModeText, NewRenderer(&buf, &buf, ModeText).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRenderer(&buf, &buf, ModeJSON).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRenderer(&buf, &buf, ModeMarkdown).EffectiveMode())
}

func TestEffectiveMode_AutoFallsBackToMarkdown(t *testing.T) {
	var buf bytes.Buffer

	// A bytes.Buffer is never a terminal.
	r := NewRenderer(&buf, &buf, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestNewRenderer_EmptyModeDefaultsToAuto(t *testing.T) {
	var buf bytes.Buffer

	r := NewRenderer(&buf, &buf, "")
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestColorEnabled_NonText(t *testing.T) {
	var buf bytes.Buffer

	assert.False(t, NewRenderer(&buf, &buf, ModeMarkdown).ColorEnabled())
	assert.False(t, NewRenderer(&buf, &buf, ModeJSON).ColorEnabled())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer

	r := NewRenderer(&buf, &buf, ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"count": 3}))
	assert.JSONEq(t, `{"count": 3}`, buf.String())
}

func TestPrintln(t *testing.T) {
	var buf bytes.Buffer

	NewRenderer(&buf, &buf, ModeText).Println("hello")
	assert.Equal(t, "hello\n", buf.String())
}
