package ports

import (
	"context"

	"github.com/aretw0/parley/pkg/domain"
)

// SessionStore keeps snapshots of live sessions between turns.
// It is a hosting concern: menu state is transient and is dropped on termination.
type SessionStore interface {
	// Save stores the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, session *domain.Session) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the stored sessions.
	List(ctx context.Context) ([]string, error)
}
