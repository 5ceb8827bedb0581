package domain

import (
	"context"
	"fmt"
	"strconv"
)

// RenderFunc produces a node's frame for the current turn.
// input is the raw text submitted this turn, or empty when the node is entered.
// Render functions may read and write session values.
type RenderFunc func(ctx context.Context, s *Session, input string) (Frame, error)

// Frame is what a node shows for one turn: display text and an ordered option list.
// A frame without options is terminal.
type Frame struct {
	Text    string
	Help    string
	Options []Option
}

// IsTerminal reports whether the frame offers no way forward.
func (f Frame) IsTerminal() bool {
	return len(f.Options) == 0
}

// Wildcard returns the catch-all option, if present.
func (f Frame) Wildcard() (Option, bool) {
	for _, opt := range f.Options {
		if opt.IsWildcard() {
			return opt, true
		}
	}
	return Option{}, false
}

// NormalizeOptions numbers keyless options by position and enforces the
// single-wildcard rule. The input slice is not modified.
func NormalizeOptions(options []Option) ([]Option, error) {
	out := make([]Option, len(options))
	wildcards := 0
	position := 0
	for i, opt := range options {
		if opt.IsWildcard() {
			wildcards++
			if wildcards > 1 {
				return nil, fmt.Errorf("%w: option %d", ErrMultipleWildcards, i+1)
			}
			out[i] = opt
			continue
		}
		position++
		if opt.Key == "" {
			opt.Key = strconv.Itoa(position)
		}
		out[i] = opt
	}
	return out, nil
}

// NodeInfo describes a registered node for validation and introspection.
// Edges are only known for declaratively built nodes.
type NodeInfo struct {
	ID     string   `json:"id"`
	Edges  []string `json:"edges,omitempty"`
	Help   string   `json:"help,omitempty"`
	Source string   `json:"source,omitempty"`
}
