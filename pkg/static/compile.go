package static

import (
	"context"
	"fmt"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/registry"
)

// Compiler turns declared nodes into registry entries.
type Compiler struct {
	validators map[string]Validator
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithValidator adds or replaces a named validator.
func WithValidator(kind string, fn Validator) CompilerOption {
	return func(c *Compiler) {
		c.validators[kind] = fn
	}
}

// NewCompiler returns a Compiler with the built-in validators.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{validators: builtinValidators()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile registers nodes with the built-in validators.
func Compile(reg *registry.Registry, nodes ...Node) error {
	return NewCompiler().Compile(reg, nodes...)
}

// Register compiles every node of the menu into reg.
func (m Menu) Register(reg *registry.Registry) error {
	return Compile(reg, m.Nodes...)
}

// Compile registers nodes into reg. Each node is checked first so a bad
// declaration never leaves a half-registered menu behind.
func (c *Compiler) Compile(reg *registry.Registry, nodes ...Node) error {
	compiled := make([]domain.RenderFunc, len(nodes))
	for i, n := range nodes {
		fn, err := c.compileNode(n)
		if err != nil {
			return err
		}
		compiled[i] = fn
	}

	for i, n := range nodes {
		err := reg.Register(n.ID, compiled[i],
			registry.WithEdges(n.Edges()...),
			registry.WithHelp(n.Help),
			registry.WithSource(n.Source),
		)
		if err != nil {
			return fmt.Errorf("register %q: %w", n.ID, err)
		}
	}
	return nil
}

func (c *Compiler) compileNode(n Node) (domain.RenderFunc, error) {
	if err := n.check(); err != nil {
		return nil, err
	}

	options := make([]domain.Option, len(n.Options))
	for i, spec := range n.Options {
		opt, err := c.compileOption(n.ID, spec)
		if err != nil {
			return nil, fmt.Errorf("node %q option %d: %w", n.ID, i+1, err)
		}
		options[i] = opt
	}

	text, help := n.Text, n.Help
	return func(ctx context.Context, s *domain.Session, input string) (domain.Frame, error) {
		return domain.Frame{
			Text:    Interpolate(text, s),
			Help:    Interpolate(help, s),
			Options: options,
		}, nil
	}, nil
}

func (c *Compiler) compileOption(nodeID string, spec Option) (domain.Option, error) {
	opt := domain.Option{Key: spec.Key, Aliases: spec.Aliases, Label: spec.Label}

	next := domain.Goto(spec.Goto)
	target := domain.To(spec.Goto)
	if spec.End {
		next = domain.End()
		target = domain.Exit()
	}

	if spec.Validate == nil && spec.SaveTo == "" {
		opt.Target = target
		return opt, nil
	}

	var check Validator
	var rules Validation
	if spec.Validate != nil {
		fn, err := c.validator(spec.Validate.Kind)
		if err != nil {
			return domain.Option{}, err
		}
		check, rules = fn, *spec.Validate
	}

	retry := spec.Retry
	if retry == "" {
		retry = nodeID
	}
	saveTo := spec.SaveTo

	opt.Target = domain.Call(func(ctx context.Context, s *domain.Session, input string) (domain.Transition, error) {
		var value any = input
		if check != nil {
			v, ok := check(input, rules)
			if !ok {
				return domain.Goto(retry), nil
			}
			value = v
		}
		if saveTo != "" {
			s.Set(saveTo, value)
		}
		return next, nil
	})
	return opt, nil
}
