package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/parley/pkg/render"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBanner_Ascii(t *testing.T) {
	var buf bytes.Buffer
	WriteBanner(&buf, termenv.Ascii)

	out := buf.String()
	assert.NotContains(t, out, "\x1b[", "ascii profile writes no escape codes")
	assert.Equal(t, len(bannerLines)+2, strings.Count(out, "\n"))
}

func TestNewRenderer_NonTerminalIsPlainText(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(nil))

	r, err := NewRenderer(f, true)
	require.NoError(t, err)
	text, ok := r.(*render.Text)
	require.True(t, ok)
	assert.Equal(t, termenv.Ascii, text.Profile)
}
