package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateNode is returned when a node identifier is registered twice.
var ErrDuplicateNode = errors.New("duplicate node")

// ErrUnknownNode is returned when a node identifier cannot be resolved.
var ErrUnknownNode = errors.New("unknown node")

// ErrInvalidNode is returned when a node registration is malformed (empty id, nil render function).
var ErrInvalidNode = errors.New("invalid node")

// ErrRegistrySealed is returned when registering into a registry that is already in use.
var ErrRegistrySealed = errors.New("registry is sealed")

// ErrMultipleWildcards is returned when a node renders more than one wildcard option.
var ErrMultipleWildcards = errors.New("more than one wildcard option")

// ErrInvalidTransition is returned when a transition callable yields the zero Transition.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionTerminated is returned when input is submitted to a session that already ended.
var ErrSessionTerminated = errors.New("session terminated")

// NodeExecutionError wraps a failure raised by user-supplied render or transition code.
// The session is left on NodeID with its values as they were at the failure point.
type NodeExecutionError struct {
	NodeID string
	Err    error
}

func (e *NodeExecutionError) Error() string {
	return fmt.Sprintf("node '%s' failed: %v", e.NodeID, e.Err)
}

func (e *NodeExecutionError) Unwrap() error {
	return e.Err
}
