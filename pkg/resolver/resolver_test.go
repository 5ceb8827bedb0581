package resolver_test

import (
	"context"
	"errors"
	"testing"
	"unicode"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ScenarioExactAndWildcard(t *testing.T) {
	ctx := context.Background()
	s := domain.NewSession("s", "", "A")
	options := []domain.Option{
		{Key: "1", Target: domain.To("B")},
		{Key: domain.WildcardKey, Target: domain.To("A")},
	}

	t.Run("Exact Key", func(t *testing.T) {
		res, err := resolver.Resolve(ctx, s, options, "1")
		require.NoError(t, err)
		assert.True(t, res.Matched)
		assert.False(t, res.Wildcard)
		assert.Equal(t, "B", res.Transition.NodeID())
	})

	t.Run("Free Text Falls To Wildcard", func(t *testing.T) {
		res, err := resolver.Resolve(ctx, s, options, "xyz")
		require.NoError(t, err)
		assert.True(t, res.Wildcard)
		assert.Equal(t, "A", res.Transition.NodeID())
	})

	t.Run("Whitespace Is Trimmed", func(t *testing.T) {
		res, err := resolver.Resolve(ctx, s, options, "  1\n")
		require.NoError(t, err)
		assert.Equal(t, "B", res.Transition.NodeID())
	})
}

func TestResolve_NoMatchWithoutWildcard(t *testing.T) {
	options := []domain.Option{{Key: "yes", Target: domain.To("B")}}

	res, err := resolver.Resolve(context.Background(), nil, options, "no")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.False(t, res.Transition.Valid())
}

func TestResolve_ExactNeverTriggersWildcard(t *testing.T) {
	wildcardCalled := false
	wildcard := domain.Option{Key: domain.WildcardKey, Target: domain.Call(
		func(ctx context.Context, s *domain.Session, input string) (domain.Transition, error) {
			wildcardCalled = true
			return domain.Goto("W"), nil
		})}
	exact := []domain.Option{
		{Key: "a", Target: domain.To("A")},
		{Key: "b", Aliases: []string{"bee"}, Target: domain.To("B")},
		{Key: "c", Target: domain.To("C")},
	}

	// Place the wildcard at every position; exact keys must still win.
	for pos := 0; pos <= len(exact); pos++ {
		options := make([]domain.Option, 0, len(exact)+1)
		options = append(options, exact[:pos]...)
		options = append(options, wildcard)
		options = append(options, exact[pos:]...)

		for input, want := range map[string]string{"a": "A", "b": "B", "bee": "B", "c": "C"} {
			res, err := resolver.Resolve(context.Background(), nil, options, input)
			require.NoError(t, err)
			assert.Equal(t, want, res.Transition.NodeID(), "input %q with wildcard at %d", input, pos)
		}
	}
	assert.False(t, wildcardCalled)
}

func TestResolve_CaseSensitive(t *testing.T) {
	options := []domain.Option{
		{Key: "Look", Target: domain.To("upper")},
		{Key: "look", Target: domain.To("lower")},
	}
	res, err := resolver.Resolve(context.Background(), nil, options, "look")
	require.NoError(t, err)
	assert.Equal(t, "lower", res.Transition.NodeID())

	res, err = resolver.Resolve(context.Background(), nil, options, "LOOK")
	require.NoError(t, err)
	assert.False(t, res.Matched)
}

func TestResolve_FirstDuplicateWins(t *testing.T) {
	options := []domain.Option{
		{Key: "go", Target: domain.To("first")},
		{Key: "go", Target: domain.To("second")},
	}
	res, err := resolver.Resolve(context.Background(), nil, options, "go")
	require.NoError(t, err)
	assert.Equal(t, "first", res.Transition.NodeID())
}

func TestResolve_AutoNumbering(t *testing.T) {
	options := []domain.Option{
		{Label: "North", Target: domain.To("north")},
		{Label: "South", Target: domain.To("south")},
	}
	res, err := resolver.Resolve(context.Background(), nil, options, "2")
	require.NoError(t, err)
	assert.Equal(t, "south", res.Transition.NodeID())
	assert.Equal(t, "2", res.Option.Key)
}

func TestResolve_ValidatorScenario(t *testing.T) {
	validate := func(ctx context.Context, s *domain.Session, input string) (domain.Transition, error) {
		if len(input) < 3 || len(input) > 20 {
			return domain.Goto("B"), nil
		}
		for _, r := range input {
			if !unicode.IsLetter(r) {
				return domain.Goto("B"), nil
			}
		}
		s.Set("name", input)
		return domain.Goto("A"), nil
	}
	options := []domain.Option{{Key: domain.WildcardKey, Target: domain.Call(validate)}}
	s := domain.NewSession("s", "", "B")

	res, err := resolver.Resolve(context.Background(), s, options, "Al")
	require.NoError(t, err)
	assert.Equal(t, "B", res.Transition.NodeID())
	_, stored := s.Lookup("name")
	assert.False(t, stored)

	res, err = resolver.Resolve(context.Background(), s, options, "Aldric")
	require.NoError(t, err)
	assert.Equal(t, "A", res.Transition.NodeID())
	assert.Equal(t, "Aldric", s.Get("name", nil))
}

func TestResolve_CallableFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		fn      domain.TransitionFunc
		wantErr error
		wantMsg string
	}{
		{
			name: "Returned Error",
			fn: func(ctx context.Context, s *domain.Session, input string) (domain.Transition, error) {
				return domain.Transition{}, boom
			},
			wantErr: boom,
		},
		{
			name: "Zero Transition",
			fn: func(ctx context.Context, s *domain.Session, input string) (domain.Transition, error) {
				return domain.Transition{}, nil
			},
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name: "Panic",
			fn: func(ctx context.Context, s *domain.Session, input string) (domain.Transition, error) {
				panic("kaboom")
			},
			wantMsg: "kaboom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := []domain.Option{{Key: domain.WildcardKey, Target: domain.Call(tt.fn)}}
			_, err := resolver.Resolve(context.Background(), nil, options, "x")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestResolve_MultipleWildcards(t *testing.T) {
	options := []domain.Option{
		{Key: domain.WildcardKey, Target: domain.To("a")},
		{Key: domain.WildcardKey, Target: domain.To("b")},
	}
	_, err := resolver.Resolve(context.Background(), nil, options, "x")
	assert.ErrorIs(t, err, domain.ErrMultipleWildcards)
}
