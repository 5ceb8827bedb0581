package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/parley/internal/runtime"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/static"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := New()

	b.Add("start").
		Text("Hello, DSL!").
		Go("", "Begin", "ask_name")

	b.Add("ask_name").
		Text("What is your name?").
		Ask("user_name", static.Validation{Kind: static.KindAlpha, Min: 3, Max: 20}, "greet")

	b.Add("greet").
		Text("Nice to meet you, {{user_name}}!").
		End("bye", "Goodbye").Alias("b")

	nodes := b.Build()
	require.Len(t, nodes, 3)
	assert.Equal(t, []string{"start", "ask_name", "greet"}, []string{nodes[0].ID, nodes[1].ID, nodes[2].ID})
	assert.Equal(t, "ask_name", nodes[0].Options[0].Goto)
	assert.Equal(t, "user_name", nodes[1].Options[0].SaveTo)
	assert.Equal(t, []string{"b"}, nodes[2].Options[0].Aliases)

	reg, err := b.Registry()
	require.NoError(t, err)

	ctx := context.Background()
	eng := runtime.NewEngine(reg)
	s, _, err := eng.Launch(ctx, "s1", "", "start")
	require.NoError(t, err)

	_, err = eng.SubmitInput(ctx, s, "1")
	require.NoError(t, err)
	out, err := eng.SubmitInput(ctx, s, "Aldric")
	require.NoError(t, err)
	assert.Equal(t, "Nice to meet you, Aldric!", out.Frame.Text)

	out, err = eng.SubmitInput(ctx, s, "b")
	require.NoError(t, err)
	assert.True(t, out.Terminated)
}

func TestBuilder_AddIsIdempotent(t *testing.T) {
	b := New()
	first := b.Add("a").Text("one")
	second := b.Add("a")

	assert.Same(t, first, second)
	assert.Len(t, b.Build(), 1)
}

func TestBuilder_RegistryRejectsDanglingEdges(t *testing.T) {
	b := New()
	b.Add("a").Text("A").Go("x", "Nowhere", "missing")

	_, err := b.Registry()
	assert.ErrorIs(t, err, domain.ErrUnknownNode)
}

func TestNodeBuilder_RetryAndTerminal(t *testing.T) {
	b := New()
	n := b.Add("a").
		Ask("age", static.Validation{Kind: static.KindNumber}, "b").Retry("oops")
	assert.Equal(t, "oops", n.Build().Options[0].Retry)

	n.Terminal()
	assert.Empty(t, n.Build().Options)

	// Modifiers on a node without options are ignored.
	n.Alias("x").Retry("y").SaveTo("z")
	assert.Empty(t, n.Build().Options)
}
