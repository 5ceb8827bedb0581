// Package registry maps node identifiers to their render functions.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/parley/pkg/domain"
)

type entry struct {
	render domain.RenderFunc
	info   domain.NodeInfo
}

// NodeOption attaches descriptive metadata to a registration.
type NodeOption func(*domain.NodeInfo)

// WithEdges declares the node's goto targets so the graph can be validated up front.
func WithEdges(targets ...string) NodeOption {
	return func(info *domain.NodeInfo) {
		info.Edges = append(info.Edges, targets...)
	}
}

// WithHelp sets the help text shown by the auto-help command.
func WithHelp(help string) NodeOption {
	return func(info *domain.NodeInfo) {
		info.Help = help
	}
}

// WithSource records where the node was defined (file path, package).
func WithSource(source string) NodeOption {
	return func(info *domain.NodeInfo) {
		info.Source = source
	}
}

// Registry manages the available nodes.
// It is safe for concurrent use. Once sealed it is immutable.
type Registry struct {
	mu     sync.RWMutex
	nodes  map[string]entry
	sealed bool
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		nodes: make(map[string]entry),
	}
}

// Register adds a node to the registry.
func (r *Registry) Register(id string, fn domain.RenderFunc, opts ...NodeOption) error {
	if id == "" || id == domain.EndNodeID {
		return fmt.Errorf("%w: identifier %q is reserved or empty", domain.ErrInvalidNode, id)
	}
	if fn == nil {
		return fmt.Errorf("%w: node %q has no render function", domain.ErrInvalidNode, id)
	}

	info := domain.NodeInfo{ID: id}
	for _, opt := range opts {
		opt(&info)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot register %q", domain.ErrRegistrySealed, id)
	}
	if _, exists := r.nodes[id]; exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateNode, id)
	}
	r.nodes[id] = entry{render: fn, info: info}
	return nil
}

// MustRegister is like Register but panics on error. Intended for package-level setup.
func (r *Registry) MustRegister(id string, fn domain.RenderFunc, opts ...NodeOption) {
	if err := r.Register(id, fn, opts...); err != nil {
		panic(err)
	}
}

// Resolve looks up a node's render function.
func (r *Registry) Resolve(id string) (domain.RenderFunc, error) {
	r.mu.RLock()
	e, ok := r.nodes[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownNode, id)
	}
	return e.render, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.nodes[id]
	return ok
}

// Info returns the node's descriptive metadata.
func (r *Registry) Info(id string) (domain.NodeInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.nodes[id]
	if !ok {
		return domain.NodeInfo{}, fmt.Errorf("%w: %q", domain.ErrUnknownNode, id)
	}
	return e.info, nil
}

// List returns all node identifiers in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Inspect returns the metadata of every node, sorted by identifier.
func (r *Registry) Inspect() []domain.NodeInfo {
	ids := r.List()
	infos := make([]domain.NodeInfo, 0, len(ids))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range ids {
		infos = append(infos, r.nodes[id].info)
	}
	return infos
}

// Seal freezes the registry. It is idempotent.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether the registry accepts registrations.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Validate checks that every declared edge resolves to a node or the terminal sentinel.
// All dangling edges are reported together.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, target := range r.nodes[id].info.Edges {
			if target == domain.EndNodeID {
				continue
			}
			if _, ok := r.nodes[target]; !ok {
				errs = append(errs, fmt.Errorf("%w: %q referenced by %q", domain.ErrUnknownNode, target, id))
			}
		}
	}
	return errors.Join(errs...)
}
