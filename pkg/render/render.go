/*
Package render formats frames for presentation.

Renderers are pure functions of the frame: no side effects, and option order is
preserved exactly as the node produced it, so numbering is stable across
re-renders. Wildcard options are never listed.
*/
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/muesli/termenv"
)

// Renderer turns a frame into presentable output.
type Renderer interface {
	Format(frame domain.Frame) (string, error)
}

// Func adapts a plain function to the Renderer interface.
type Func func(frame domain.Frame) (string, error)

// Format calls fn.
func (fn Func) Format(frame domain.Frame) (string, error) {
	return fn(frame)
}

// Text renders plain lines: the node text, a blank line, then one line per option.
type Text struct {
	// Profile controls ANSI styling of option keys. termenv.Ascii disables it.
	Profile termenv.Profile
	// KeyColor is the hex color used for keys when styling is enabled.
	KeyColor string
}

// NewText returns an unstyled text renderer.
func NewText() *Text {
	return &Text{Profile: termenv.Ascii, KeyColor: "#818cf8"}
}

// NewStyledText returns a text renderer that colors keys for the detected terminal.
func NewStyledText() *Text {
	return &Text{Profile: termenv.ColorProfile(), KeyColor: "#818cf8"}
}

// Format implements Renderer.
func (t *Text) Format(frame domain.Frame) (string, error) {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(frame.Text))

	views := frame.Views()
	if len(views) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		for i, v := range views {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(" ")
			sb.WriteString(t.key(v.Key))
			if len(v.Aliases) > 0 {
				sb.WriteString(" (" + strings.Join(v.Aliases, ", ") + ")")
			}
			if v.Label != "" {
				sb.WriteString(": " + v.Label)
			}
		}
	}
	return sb.String(), nil
}

func (t *Text) key(k string) string {
	if t.Profile == termenv.Ascii {
		return k
	}
	return termenv.String(k).Foreground(t.Profile.Color(t.KeyColor)).Bold().String()
}

// JSON renders a structured view for rich clients.
type JSON struct{}

type jsonView struct {
	Text    string              `json:"text"`
	Options []domain.OptionView `json:"options"`
}

// Format implements Renderer.
func (JSON) Format(frame domain.Frame) (string, error) {
	data, err := json.Marshal(jsonView{
		Text:    strings.TrimSpace(frame.Text),
		Options: frame.Views(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal frame: %w", err)
	}
	return string(data), nil
}
