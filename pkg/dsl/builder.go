package dsl

import (
	"fmt"

	"github.com/aretw0/parley/pkg/registry"
	"github.com/aretw0/parley/pkg/static"
)

// Builder manages the menu construction.
type Builder struct {
	nodes map[string]*NodeBuilder
	order []string
}

// New creates a new menu builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the menu.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    static.Node{ID: id, Source: "dsl"},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build returns the declared nodes in the order they were added.
func (b *Builder) Build() []static.Node {
	nodes := make([]static.Node, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].Build())
	}
	return nodes
}

// Compile registers the declared nodes into reg.
func (b *Builder) Compile(reg *registry.Registry, opts ...static.CompilerOption) error {
	return static.NewCompiler(opts...).Compile(reg, b.Build()...)
}

// Registry compiles the menu into a fresh registry and validates its edges.
func (b *Builder) Registry(opts ...static.CompilerOption) (*registry.Registry, error) {
	reg := registry.New()
	if err := b.Compile(reg, opts...); err != nil {
		return nil, fmt.Errorf("failed to compile menu: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu graph: %w", err)
	}
	return reg, nil
}
