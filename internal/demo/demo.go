// Package demo is a small character creation menu used by the CLI and in tests.
package demo

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/registry"
)

// Name length bounds, in runes.
const (
	MinNameLength = 3
	MaxNameLength = 20
)

// Classes selectable in the class node, in display order.
var Classes = []string{"warrior", "mage", "rogue"}

// Registry returns a fresh registry holding the demo menu. Its entry node is "start".
func Registry() (*registry.Registry, error) {
	reg := registry.New()
	nodes := []struct {
		id    string
		fn    domain.RenderFunc
		edges []string
		help  string
	}{
		{"start", renderStart, []string{"name", "class", "review", domain.EndNodeID}, "Pick a number, or type quit to leave."},
		{"name", renderName, []string{"start", "name"}, fmt.Sprintf("Letters only, %d to %d of them.", MinNameLength, MaxNameLength)},
		{"class", renderClass, []string{"start"}, ""},
		{"review", renderReview, []string{"start"}, ""},
	}
	for _, n := range nodes {
		opts := []registry.NodeOption{registry.WithEdges(n.edges...), registry.WithSource("demo")}
		if n.help != "" {
			opts = append(opts, registry.WithHelp(n.help))
		}
		if err := reg.Register(n.id, n.fn, opts...); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func renderStart(ctx context.Context, s *domain.Session, input string) (domain.Frame, error) {
	return domain.Frame{
		Text: "Character creation",
		Options: []domain.Option{
			{Label: "Choose a name", Target: domain.To("name")},
			{Label: "Choose a class", Target: domain.To("class")},
			{Label: "Review", Target: domain.To("review")},
			{Key: "done", Label: "Finish", Target: domain.Exit()},
		},
	}, nil
}

func renderName(ctx context.Context, s *domain.Session, input string) (domain.Frame, error) {
	return domain.Frame{
		Text: fmt.Sprintf("Enter a name (%d-%d letters).", MinNameLength, MaxNameLength),
		Options: []domain.Option{
			{Key: domain.WildcardKey, Target: domain.Call(setName)},
		},
	}, nil
}

// setName stores a valid name and returns to the main menu, or asks again.
func setName(ctx context.Context, s *domain.Session, input string) (domain.Transition, error) {
	if !ValidName(input) {
		return domain.Goto("name"), nil
	}
	s.Set("name", input)
	return domain.Goto("start"), nil
}

// ValidName reports whether name is alphabetic and within the length bounds.
func ValidName(name string) bool {
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func renderClass(ctx context.Context, s *domain.Session, input string) (domain.Frame, error) {
	options := make([]domain.Option, 0, len(Classes))
	for _, class := range Classes {
		options = append(options, domain.Option{
			Key:    class[:1],
			Label:  strings.ToUpper(class[:1]) + class[1:],
			Target: domain.Call(chooseClass(class)),
		})
	}
	return withBack(domain.Frame{Text: "Choose a class.", Options: options}), nil
}

func chooseClass(class string) domain.TransitionFunc {
	return func(ctx context.Context, s *domain.Session, input string) (domain.Transition, error) {
		s.Set("class", class)
		return domain.Goto("start"), nil
	}
}

func renderReview(ctx context.Context, s *domain.Session, input string) (domain.Frame, error) {
	text := fmt.Sprintf("Name: %v\nClass: %v", s.Get("name", "(unset)"), s.Get("class", "(unset)"))
	return withBack(domain.Frame{Text: text}), nil
}

// withBack appends a "b" option returning to the main menu.
func withBack(f domain.Frame) domain.Frame {
	f.Options = append(f.Options, domain.Option{Key: "b", Aliases: []string{"back"}, Label: "Back", Target: domain.To("start")})
	return f
}
