package loam

// NodeMetadata is the frontmatter of a menu node document.
// The document body is the node text.
type NodeMetadata struct {
	ID   string `json:"id" mapstructure:"id"`
	Help string `json:"help" mapstructure:"help"`

	// Options are decoded by static.Decode so they accept the same shorthand as YAML menus.
	Options []map[string]any `json:"options" mapstructure:"options"`

	// Start marks the entry node of the menu.
	Start bool `json:"start" mapstructure:"start"`
}
