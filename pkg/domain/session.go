package domain

import (
	"maps"
	"slices"
	"sort"
	"sync"
	"time"
)

// Status defines whether a session still accepts input.
type Status string

const (
	StatusActive     Status = "active"     // Normal operation
	StatusTerminated Status = "terminated" // Sink state reached
)

// Session is one user's traversal of the menu graph.
//
// Values is the transient state bag. It is never written to durable storage by
// the engine; keyed hosts may keep snapshots in a session store while the
// session is live. Use Get/Set/Delete from render and transition code.
//
// Stores round-trip Values through MarshalSession, so a value read back from a
// store is one of: string, bool, int (whole numbers), float64, []any,
// map[string]any or nil. Other types are reshaped to their JSON form.
type Session struct {
	ID      string         `json:"id"`
	UserID  string         `json:"user_id,omitempty"`
	NodeID  string         `json:"node_id"`
	Status  Status         `json:"status"`
	Values  map[string]any `json:"values,omitempty"`
	History []string       `json:"history,omitempty"`
	Turns   int            `json:"turns"`

	// UpdatedAt is the time of the last completed turn. Hosts use it to expire idle sessions.
	UpdatedAt time.Time `json:"updated_at"`

	mu   sync.RWMutex
	turn sync.Mutex
}

// NewSession creates a clean session positioned on startNodeID.
func NewSession(id, userID, startNodeID string) *Session {
	return &Session{
		ID:        id,
		UserID:    userID,
		NodeID:    startNodeID,
		Status:    StatusActive,
		Values:    make(map[string]any),
		History:   []string{startNodeID},
		UpdatedAt: time.Now(),
	}
}

// Get returns the value for key, or def when absent.
func (s *Session) Get(key string, def any) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.Values[key]; ok {
		return v
	}
	return def
}

// Lookup returns the value for key and whether it was present.
func (s *Session) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.Values[key]
	return v, ok
}

// Set stores value under key.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = value
}

// Delete removes key.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Values, key)
}

// Keys returns the stored keys in sorted order.
func (s *Session) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.Values))
	for k := range s.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CurrentNode returns the active node identifier.
func (s *Session) CurrentNode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NodeID
}

// IsTerminated reports whether the session reached a sink state.
func (s *Session) IsTerminated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status == StatusTerminated
}

// Advance moves the session to nodeID and records it in the history.
func (s *Session) Advance(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NodeID = nodeID
	s.History = append(s.History, nodeID)
}

// CompleteTurn increments the turn counter.
func (s *Session) CompleteTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Turns++
	s.UpdatedAt = time.Now()
}

// Destroy clears all transient values and marks the session terminated.
func (s *Session) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.Values)
	s.Status = StatusTerminated
}

// Snapshot returns an independent copy of the session's data.
func (s *Session) Snapshot() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Session{
		ID:        s.ID,
		UserID:    s.UserID,
		NodeID:    s.NodeID,
		Status:    s.Status,
		Values:    maps.Clone(s.Values),
		History:   slices.Clone(s.History),
		Turns:     s.Turns,
		UpdatedAt: s.UpdatedAt,
	}
}

// WithTurn runs fn while holding the session's turn lock, so one full
// render-resolve-update cycle never interleaves with another on the same session.
// The lock is released on every exit path, panics included.
func (s *Session) WithTurn(fn func() error) error {
	s.turn.Lock()
	defer s.turn.Unlock()
	return fn()
}
