package tui

import (
	"os"

	"github.com/aretw0/parley/pkg/render"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// NewRenderer picks how frames are shown on out. Pipes get plain text so
// output stays parseable; terminals get colored keys, or glamour markdown
// wrapped to the terminal width when markdown is set.
func NewRenderer(out *os.File, markdown bool) (render.Renderer, error) {
	if !IsTerminal(out) {
		return render.NewText(), nil
	}
	if !markdown {
		return render.NewStyledText(), nil
	}
	width := 0
	if w, _, err := term.GetSize(int(out.Fd())); err == nil {
		width = w
	}
	return render.NewMarkdown("", width)
}
