package graph

import (
	"fmt"
	"path"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// endID is the Mermaid node drawn for the terminal sentinel. "end" is reserved by Mermaid.
const endID = "parley_end"

// GraphOverlay contains session data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// OverlayFor builds an overlay from a session snapshot.
func OverlayFor(s *domain.Session) *GraphOverlay {
	if s == nil {
		return nil
	}
	return &GraphOverlay{VisitedNodes: s.History, CurrentNode: s.CurrentNode()}
}

// GenerateMermaid produces a Mermaid flowchart from registered nodes.
// Shapes:
//   - entry node: ((Circle))
//   - declared sink (declarative node without edges): ([Stadium])
//   - code node without declared edges: [/Parallelogram/]
//   - default: [Rectangle]
//
// Edges crossing directories are dotted. Overlay styles are applied when given.
func GenerateMermaid(nodes []domain.NodeInfo, entry string, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	usesEnd := false
	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case node.ID == entry:
			opener, closer = "((", "))"
		case len(node.Edges) == 0 && node.Source != "":
			opener, closer = "([", "])"
		case len(node.Edges) == 0:
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(node.ID), closer)

		for _, target := range node.Edges {
			if target == domain.EndNodeID {
				usesEnd = true
				fmt.Fprintf(&sb, "    %s --> %s\n", safeID, endID)
				continue
			}
			arrow := "-->"
			if path.Dir(node.ID) != path.Dir(target) {
				arrow = "-.->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", safeID, arrow, sanitizeMermaidID(target))
		}
	}
	if usesEnd {
		fmt.Fprintf(&sb, "    %s(((\"end\")))\n", endID)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !seen[safeID] {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}
		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
