package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/loru/internal/ui/output"
)

func TestColorProfile_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, output.IsTerminal(&buf))
	assert.Equal(t, termenv.Ascii, output.ColorProfile(&buf))
}

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile(nil))
}

func TestNew_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)

	_, err := out.WriteString(out.String("hello").Foreground(termenv.ANSIRed).String())
	assert.NoError(t, err)
	assert.Equal(t, "hello", buf.String())
}
