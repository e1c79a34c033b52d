package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRenderer_BufferIsPlain(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	assert.True(t, r.NoColor(), "non-terminal writers never get color")
	assert.Equal(t, "ok", r.Style("Success", "ok"))
}

func TestShouldUseColor(t *testing.T) {
	assert.False(t, ShouldUseColor(&bytes.Buffer{}))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ShouldUseColor(&bytes.Buffer{}))
}

func TestLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)

	r.Line("Success", "applied", "%s (%d vars)", "/x/dist/extension.js", 2)
	r.Line("", "", "plain %s", "line")
	r.Printf("raw\n")

	assert.Equal(t, "applied /x/dist/extension.js (2 vars)\nplain line\nraw\n", buf.String())
}

func TestStyle_Unknown(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, true)
	assert.Equal(t, "text", r.Style("NoSuchStyle", "text"))
}
