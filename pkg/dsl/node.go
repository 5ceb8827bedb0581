package dsl

import (
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/static"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    static.Node
	builder *Builder
}

// Text sets the text shown when the node is rendered. {{key}} placeholders are
// filled from the session.
func (n *NodeBuilder) Text(content string) *NodeBuilder {
	n.node.Text = content
	return n
}

// Help sets the text shown by the help command.
func (n *NodeBuilder) Help(content string) *NodeBuilder {
	n.node.Help = content
	return n
}

// Go adds an option that moves to target. An empty key is auto-numbered.
func (n *NodeBuilder) Go(key, label, target string) *NodeBuilder {
	n.node.Options = append(n.node.Options, static.Option{Key: key, Label: label, Goto: target})
	return n
}

// End adds an option that ends the menu.
func (n *NodeBuilder) End(key, label string) *NodeBuilder {
	n.node.Options = append(n.node.Options, static.Option{Key: key, Label: label, End: true})
	return n
}

// Default adds the free-text option, followed when no other key matches.
func (n *NodeBuilder) Default(target string) *NodeBuilder {
	n.node.Options = append(n.node.Options, static.Option{Key: domain.WildcardKey, Goto: target})
	return n
}

// Ask adds a free-text option that validates the input, stores it under
// saveTo and moves to next. Invalid input re-renders the node.
func (n *NodeBuilder) Ask(saveTo string, v static.Validation, next string) *NodeBuilder {
	n.node.Options = append(n.node.Options, static.Option{
		Key:      domain.WildcardKey,
		Validate: &v,
		SaveTo:   saveTo,
		Goto:     next,
	})
	return n
}

// Alias adds extra keys to the last option.
func (n *NodeBuilder) Alias(aliases ...string) *NodeBuilder {
	if last := n.last(); last != nil {
		last.Aliases = append(last.Aliases, aliases...)
	}
	return n
}

// Retry sets where the last option goes when validation fails.
func (n *NodeBuilder) Retry(target string) *NodeBuilder {
	if last := n.last(); last != nil {
		last.Retry = target
	}
	return n
}

// SaveTo stores the input of the last option under key.
func (n *NodeBuilder) SaveTo(key string) *NodeBuilder {
	if last := n.last(); last != nil {
		last.SaveTo = key
	}
	return n
}

// Terminal removes all options: the menu ends after this node is shown.
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.node.Options = nil
	return n
}

// Build returns the underlying static.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() static.Node {
	node := n.node
	node.Options = append([]static.Option(nil), n.node.Options...)
	return node
}

func (n *NodeBuilder) last() *static.Option {
	if len(n.node.Options) == 0 {
		return nil
	}
	return &n.node.Options[len(n.node.Options)-1]
}
