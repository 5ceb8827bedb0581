package runner

import (
	"context"

	"github.com/aretw0/parley/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI) and JSON (structured) modes.
type IOHandler interface {
	// Output presents the result of a turn.
	Output(ctx context.Context, out domain.Output) error

	// Input reads one line from the user.
	// It returns io.EOF when the stream ends.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (errors, status) distinct from menu content.
	SystemOutput(ctx context.Context, msg string) error
}
