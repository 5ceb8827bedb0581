package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/parley/pkg/registry"
	"github.com/aretw0/parley/pkg/static"
)

// Loader reads menu nodes from a Loam repository of markdown (or JSON/YAML) documents.
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NodeMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number, which static.Decode converts to ints.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[NodeMetadata](repo)), nil
}

// GetNode reads one node declaration.
func (l *Loader) GetNode(ctx context.Context, id string) (static.Node, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return static.Node{}, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return toNode(doc.ID, doc.Data, doc.Content)
}

// ListNodes lists all node IDs in the repository.
func (l *Loader) ListNodes(ctx context.Context) ([]string, error) {
	nodes, _, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids, nil
}

// Load reads every document as a menu. The start node is the one marked
// "start: true", if any.
func (l *Loader) Load(ctx context.Context) (static.Menu, error) {
	nodes, start, err := l.load(ctx)
	if err != nil {
		return static.Menu{}, err
	}
	return static.Menu{Start: start, Nodes: nodes}, nil
}

// Register loads the menu and compiles it into reg. It returns the declared start node.
func (l *Loader) Register(ctx context.Context, reg *registry.Registry) (string, error) {
	menu, err := l.Load(ctx)
	if err != nil {
		return "", err
	}
	if err := menu.Register(reg); err != nil {
		return "", err
	}
	return menu.Start, nil
}

func (l *Loader) load(ctx context.Context) ([]static.Node, string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	nodes := make([]static.Node, 0, len(docs))
	start := ""
	for _, doc := range docs {
		node, err := toNode(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, "", err
		}
		if existingPath, ok := seen[node.ID]; ok {
			return nil, "", fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", node.ID, existingPath, doc.ID)
		}
		seen[node.ID] = doc.ID

		if doc.Data.Start {
			if start != "" {
				return nil, "", fmt.Errorf("both %q and %q are marked as start", start, node.ID)
			}
			start = node.ID
		}
		nodes = append(nodes, node)
	}
	return nodes, start, nil
}

func toNode(docID string, meta NodeMetadata, content string) (static.Node, error) {
	rawID := meta.ID
	if rawID == "" {
		rawID = docID
	}
	node := static.Node{
		ID:     trimExtension(rawID),
		Text:   strings.TrimSpace(content),
		Help:   meta.Help,
		Source: docID,
	}
	if len(meta.Options) > 0 {
		if err := static.Decode(meta.Options, &node.Options); err != nil {
			return static.Node{}, fmt.Errorf("node %q: %w", node.ID, err)
		}
	}
	return node, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
