package runner

import (
	"context"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
)

// driver abstracts where the session lives: in the runner or in the engine's store.
type driver interface {
	start(ctx context.Context) (domain.Output, error)
	submit(ctx context.Context, raw string) (domain.Output, error)
	// detach is called when the runner stops before the session terminated.
	detach(ctx context.Context) error
	id() string
}

// localDriver owns its session. Detaching ends it.
type localDriver struct {
	engine    *parley.Engine
	userID    string
	startNode string
	session   *domain.Session
}

func (d *localDriver) start(ctx context.Context) (domain.Output, error) {
	s, out, err := d.engine.Launch(ctx, d.userID, d.startNode)
	if err != nil {
		return domain.Output{}, err
	}
	d.session = s
	return out, nil
}

func (d *localDriver) submit(ctx context.Context, raw string) (domain.Output, error) {
	return d.engine.SubmitInput(ctx, d.session, raw)
}

func (d *localDriver) detach(ctx context.Context) error {
	if d.session == nil {
		return nil
	}
	return d.engine.Cancel(ctx, d.session)
}

func (d *localDriver) id() string {
	if d.session == nil {
		return ""
	}
	return d.session.ID
}

// keyedDriver runs a session kept in the engine's store. Detaching leaves it
// there so that it can be resumed.
type keyedDriver struct {
	engine    *parley.Engine
	userID    string
	startNode string
	sessionID string
}

func (d *keyedDriver) start(ctx context.Context) (domain.Output, error) {
	if d.sessionID != "" {
		return d.engine.View(ctx, d.sessionID)
	}
	out, err := d.engine.Open(ctx, d.userID, d.startNode)
	if err != nil {
		return domain.Output{}, err
	}
	d.sessionID = out.SessionID
	return out, nil
}

func (d *keyedDriver) submit(ctx context.Context, raw string) (domain.Output, error) {
	return d.engine.Submit(ctx, d.sessionID, raw)
}

func (d *keyedDriver) detach(ctx context.Context) error { return nil }

func (d *keyedDriver) id() string { return d.sessionID }
