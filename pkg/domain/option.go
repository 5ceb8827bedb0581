package domain

import "context"

// WildcardKey marks the catch-all option matching any input no exact key matched.
const WildcardKey = "_default"

// TransitionFunc computes a transition from free input. It may read and write
// session values, e.g. to record a validated name.
type TransitionFunc func(ctx context.Context, s *Session, input string) (Transition, error)

// Target is where an option leads: a fixed Transition or a callable.
type Target struct {
	next Transition
	fn   TransitionFunc
}

// To targets a fixed node.
func To(nodeID string) Target {
	return Target{next: Goto(nodeID)}
}

// Exit targets the terminal sentinel.
func Exit() Target {
	return Target{next: End()}
}

// Call targets a callable evaluated with the raw input.
func Call(fn TransitionFunc) Target {
	return Target{fn: fn}
}

// Func returns the callable, if any.
func (t Target) Func() TransitionFunc { return t.fn }

// Static returns the fixed transition and true when the target is not a callable.
func (t Target) Static() (Transition, bool) {
	if t.fn != nil {
		return Transition{}, false
	}
	return t.next, t.next.Valid()
}

// Option is one selectable choice within a node.
type Option struct {
	// Key is matched case-sensitively against trimmed input.
	// Empty keys are numbered by position when the node is resolved.
	Key string
	// Aliases are extra exact keys for the same choice.
	Aliases []string
	// Label is the display description.
	Label  string
	Target Target
}

// IsWildcard reports whether this option is the catch-all.
func (o Option) IsWildcard() bool {
	return o.Key == WildcardKey
}

// Matches reports an exact match on the key or one of the aliases.
func (o Option) Matches(input string) bool {
	if o.IsWildcard() {
		return false
	}
	if o.Key == input {
		return true
	}
	for _, alias := range o.Aliases {
		if alias == input {
			return true
		}
	}
	return false
}
