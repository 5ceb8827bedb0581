/*
Package resolver maps user input onto a node's option set.

Matching order is fixed: options are scanned in render order for an exact,
case-sensitive match on the key or one of its aliases; the first hit wins. Only
when nothing matches is the wildcard option considered. No match and no
wildcard yields a Result with Matched=false, which is a normal outcome rather
than an error.
*/
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// Result is the outcome of resolving one input.
type Result struct {
	Matched    bool
	Wildcard   bool
	Option     domain.Option
	Transition domain.Transition
}

// Normalize trims surrounding whitespace. Inner text and case are preserved.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// Match finds the option selected by input without evaluating its target.
// options must already be normalized (see domain.NormalizeOptions).
func Match(options []domain.Option, input string) (domain.Option, bool) {
	for _, opt := range options {
		if opt.Matches(input) {
			return opt, true
		}
	}
	for _, opt := range options {
		if opt.IsWildcard() {
			return opt, true
		}
	}
	return domain.Option{}, false
}

// Resolve matches raw input against options and evaluates the chosen target.
// Callable targets receive the normalized input. Failures raised by callables,
// panics included, are returned as errors for the caller to attribute to a node.
func Resolve(ctx context.Context, s *domain.Session, options []domain.Option, raw string) (Result, error) {
	normalized, err := domain.NormalizeOptions(options)
	if err != nil {
		return Result{}, err
	}

	input := Normalize(raw)
	opt, ok := Match(normalized, input)
	if !ok {
		return Result{Matched: false}, nil
	}

	next, err := evaluate(ctx, s, opt.Target, input)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Matched:    true,
		Wildcard:   opt.IsWildcard(),
		Option:     opt,
		Transition: next,
	}, nil
}

func evaluate(ctx context.Context, s *domain.Session, target domain.Target, input string) (next domain.Transition, err error) {
	if static, ok := target.Static(); ok {
		return static, nil
	}

	fn := target.Func()
	if fn == nil {
		return domain.Transition{}, fmt.Errorf("%w: option has no target", domain.ErrInvalidTransition)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transition panicked: %v", r)
		}
	}()

	next, err = fn(ctx, s, input)
	if err != nil {
		return domain.Transition{}, err
	}
	if !next.Valid() {
		return domain.Transition{}, fmt.Errorf("%w: callable returned %s", domain.ErrInvalidTransition, next)
	}
	return next, nil
}
