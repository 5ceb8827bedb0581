package render

import (
	"fmt"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// Markdown renders the frame as markdown for terminals using glamour.
type Markdown struct {
	r *glamour.TermRenderer
}

// NewMarkdown builds a markdown renderer. Style defaults to automatic
// light/dark detection; pass "notty", "dark" or "light" to force one.
func NewMarkdown(style string, wordWrap int) (*Markdown, error) {
	opts := []glamour.TermRendererOption{}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if wordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(wordWrap))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Markdown{r: r}, nil
}

// Format implements Renderer.
func (m *Markdown) Format(frame domain.Frame) (string, error) {
	out, err := m.r.Render(ToMarkdown(frame))
	if err != nil {
		return "", fmt.Errorf("markdown rendering failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ToMarkdown is the markdown source handed to glamour.
func ToMarkdown(frame domain.Frame) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(frame.Text))

	views := frame.Views()
	if len(views) == 0 {
		return sb.String()
	}
	sb.WriteString("\n\n")
	for _, v := range views {
		sb.WriteString("- **" + v.Key + "**")
		if v.Label != "" {
			sb.WriteString(": " + v.Label)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
