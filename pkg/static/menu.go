package static

import (
	"fmt"

	"github.com/aretw0/parley/pkg/domain"
)

// Menu is a set of declared nodes.
type Menu struct {
	Name  string `json:"name,omitempty" mapstructure:"name"`
	Start string `json:"start,omitempty" mapstructure:"start"`
	Nodes []Node `json:"nodes" mapstructure:"nodes"`
}

// Node is the declaration of one menu node.
type Node struct {
	ID      string   `json:"id" mapstructure:"id"`
	Text    string   `json:"text" mapstructure:"text"`
	Help    string   `json:"help,omitempty" mapstructure:"help"`
	Options []Option `json:"options,omitempty" mapstructure:"options"`

	// Source records where the node was declared (file path, document ID).
	Source string `json:"source,omitempty" mapstructure:"-"`
}

// Option is the declaration of one selectable option.
type Option struct {
	Key     string   `json:"key,omitempty" mapstructure:"key"`
	Aliases []string `json:"aliases,omitempty" mapstructure:"aliases"`
	Label   string   `json:"label,omitempty" mapstructure:"label"`

	Goto string `json:"goto,omitempty" mapstructure:"goto"`
	End  bool   `json:"end,omitempty" mapstructure:"end"`

	// Validate checks the input before the option is followed.
	Validate *Validation `json:"validate,omitempty" mapstructure:"validate"`
	// SaveTo stores the (validated) input in the session under this key.
	SaveTo string `json:"save_to,omitempty" mapstructure:"save_to"`
	// Retry is the node to go to when validation fails (default: the same node).
	Retry string `json:"retry,omitempty" mapstructure:"retry"`
}

// Validation selects a validator and its bounds.
type Validation struct {
	Kind string `json:"kind" mapstructure:"kind"`
	Min  int    `json:"min,omitempty" mapstructure:"min"`
	Max  int    `json:"max,omitempty" mapstructure:"max"`
}

// Edges returns the nodes this node can reach, the end sentinel included.
func (n Node) Edges() []string {
	var edges []string
	seen := make(map[string]bool)
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			edges = append(edges, id)
		}
	}
	for _, opt := range n.Options {
		if opt.End {
			add(domain.EndNodeID)
		} else {
			add(opt.Goto)
		}
		if opt.Validate != nil {
			add(opt.Retry)
		}
	}
	return edges
}

// check reports declaration errors that do not depend on other nodes.
func (n Node) check() error {
	if n.ID == "" {
		return fmt.Errorf("%w: node without id", domain.ErrInvalidNode)
	}
	wildcards := 0
	for i, opt := range n.Options {
		if opt.Key == domain.WildcardKey {
			wildcards++
		}
		if opt.End && opt.Goto != "" {
			return fmt.Errorf("%w: option %d of %q has both goto and end", domain.ErrInvalidNode, i+1, n.ID)
		}
		if !opt.End && opt.Goto == "" {
			return fmt.Errorf("%w: option %d of %q has no target", domain.ErrInvalidNode, i+1, n.ID)
		}
	}
	if wildcards > 1 {
		return fmt.Errorf("%w: node %q", domain.ErrMultipleWildcards, n.ID)
	}
	return nil
}
