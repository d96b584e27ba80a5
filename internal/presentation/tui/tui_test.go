package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer

	PrintBanner(&buf)

	lines := strings.Split(strings.Trim(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
}

func TestNewRenderer_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))

	render := NewRenderer()
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
