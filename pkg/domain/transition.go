package domain

// EndNodeID is the terminal sentinel usable wherever a node identifier is expected.
// Goto(EndNodeID) is the same as End().
const EndNodeID = "_end"

// TransitionKind discriminates the Transition variants.
type TransitionKind uint8

const (
	transitionInvalid TransitionKind = iota
	// TransitionGoto moves the session to another node.
	TransitionGoto
	// TransitionEnd terminates the session.
	TransitionEnd
)

// Transition is the outcome of a resolved option: Goto(node) or End().
// The zero value is invalid.
type Transition struct {
	kind   TransitionKind
	nodeID string
}

// Goto returns a transition to the given node.
func Goto(nodeID string) Transition {
	if nodeID == EndNodeID {
		return End()
	}
	return Transition{kind: TransitionGoto, nodeID: nodeID}
}

// End returns the terminal transition.
func End() Transition {
	return Transition{kind: TransitionEnd}
}

// Kind reports the variant.
func (t Transition) Kind() TransitionKind { return t.kind }

// NodeID is the target node for Goto transitions and empty otherwise.
func (t Transition) NodeID() string { return t.nodeID }

// IsEnd reports whether the transition terminates the session.
func (t Transition) IsEnd() bool { return t.kind == TransitionEnd }

// Valid reports whether the transition is one of the known variants.
func (t Transition) Valid() bool {
	switch t.kind {
	case TransitionGoto:
		return t.nodeID != ""
	case TransitionEnd:
		return true
	}
	return false
}

func (t Transition) String() string {
	switch t.kind {
	case TransitionGoto:
		return "goto(" + t.nodeID + ")"
	case TransitionEnd:
		return "end"
	}
	return "invalid"
}
