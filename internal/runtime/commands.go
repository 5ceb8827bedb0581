package runtime

import (
	"context"
	"slices"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/resolver"
)

var (
	quitWords = []string{"quit", "q", "exit"}
	lookWords = []string{"look", "l"}
	helpWords = []string{"help", "h"}
)

// commandSet holds the enabled auto-commands.
type commandSet struct {
	quit bool
	look bool
	help bool
}

// command handles auto-commands. Options of the current node always win over them.
func (e *Engine) command(ctx context.Context, s *domain.Session, nodeID string, frame domain.Frame, input string) (domain.Output, bool, error) {
	if input == "" {
		return domain.Output{}, false, nil
	}
	if opt, ok := resolver.Match(frame.Options, input); ok && !opt.IsWildcard() {
		return domain.Output{}, false, nil
	}

	switch {
	case e.commands.quit && slices.Contains(quitWords, input):
		s.CompleteTurn()
		e.terminate(ctx, s, domain.EndReasonQuit)
		out, err := e.output(s, domain.Frame{}, true)
		return out, true, err

	case e.commands.look && slices.Contains(lookWords, input):
		fresh, err := e.render(ctx, s, nodeID, "")
		if err != nil {
			return domain.Output{}, true, err
		}
		s.CompleteTurn()
		out, err := e.output(s, fresh, true)
		return out, true, err

	case e.commands.help && slices.Contains(helpWords, input):
		help := frame.Help
		if help == "" {
			if info, err := e.registry.Info(nodeID); err == nil {
				help = info.Help
			}
		}
		if help == "" {
			return domain.Output{}, false, nil
		}
		s.CompleteTurn()
		out, err := e.output(s, domain.Frame{Text: help, Help: help, Options: frame.Options}, true)
		return out, true, err
	}
	return domain.Output{}, false, nil
}
