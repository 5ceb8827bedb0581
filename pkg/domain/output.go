package domain

// OptionView is the display form of an option. Wildcards are not listed.
type OptionView struct {
	Key     string   `json:"key"`
	Aliases []string `json:"aliases,omitempty"`
	Label   string   `json:"label,omitempty"`
}

// Views returns the visible options in render order.
func (f Frame) Views() []OptionView {
	views := make([]OptionView, 0, len(f.Options))
	for _, opt := range f.Options {
		if opt.IsWildcard() {
			continue
		}
		views = append(views, OptionView{Key: opt.Key, Aliases: opt.Aliases, Label: opt.Label})
	}
	return views
}

// Output is the presentable result of one turn.
type Output struct {
	SessionID string `json:"session_id"`
	NodeID    string `json:"node_id"`
	// Body is the frame formatted by the engine's renderer.
	Body    string       `json:"body"`
	Options []OptionView `json:"options,omitempty"`
	// Matched is false when the input matched no option and the node was re-rendered.
	Matched    bool `json:"matched"`
	Terminated bool `json:"terminated"`

	Frame Frame `json:"-"`
}
