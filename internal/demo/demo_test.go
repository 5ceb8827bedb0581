package demo_test

import (
	"context"
	"testing"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/demo"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo_CharacterCreation(t *testing.T) {
	ctx := context.Background()
	reg, err := demo.Registry()
	require.NoError(t, err)

	var final map[string]any
	eng, err := parley.New(reg, parley.WithLifecycleHooks(domain.LifecycleHooks{
		OnSessionEnd: func(ctx context.Context, e *domain.SessionEvent) { final = e.Values },
	}))
	require.NoError(t, err)

	s, out, err := eng.Launch(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "start", out.NodeID)

	steps := []struct {
		input string
		node  string
	}{
		{"xyz", "start"},
		{"1", "name"},
		{"Al", "name"},
		{"Aldric", "start"},
		{"2", "class"},
		{"m", "start"},
		{"3", "review"},
		{"back", "start"},
	}
	for _, step := range steps {
		out, err = eng.SubmitInput(ctx, s, step.input)
		require.NoError(t, err, step.input)
		assert.Equal(t, step.node, out.NodeID, "after %q", step.input)
	}

	out, err = eng.SubmitInput(ctx, s, "3")
	require.NoError(t, err)
	assert.Contains(t, out.Body, "Name: Aldric")
	assert.Contains(t, out.Body, "Class: mage")

	_, err = eng.SubmitInput(ctx, s, "b")
	require.NoError(t, err)
	out, err = eng.SubmitInput(ctx, s, "done")
	require.NoError(t, err)
	assert.True(t, out.Terminated)
	assert.Equal(t, "Aldric", final["name"])
	assert.Equal(t, "mage", final["class"])
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Al", false},
		{"Ald", true},
		{"Aldric", true},
		{"Zoë", true},
		{"R2D2", false},
		{"Anne Marie", false},
		{"Abcdefghijklmnopqrst", true},
		{"Abcdefghijklmnopqrstu", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, demo.ValidName(tt.name))
		})
	}
}

func TestRegistry_Inspect(t *testing.T) {
	reg, err := demo.Registry()
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	info, err := reg.Info("name")
	require.NoError(t, err)
	assert.Contains(t, info.Help, "Letters only")
	assert.Equal(t, "demo", info.Source)
}
