package registry_test

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textNode(text string) domain.RenderFunc {
	return func(ctx context.Context, s *domain.Session, input string) (domain.Frame, error) {
		return domain.Frame{Text: text}, nil
	}
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg := registry.New()
	fn := textNode("hello")
	require.NoError(t, reg.Register("start", fn))

	got1, err := reg.Resolve("start")
	require.NoError(t, err)
	got2, err := reg.Resolve("start")
	require.NoError(t, err)

	// Same function on every call.
	assert.Equal(t, reflect.ValueOf(fn).Pointer(), reflect.ValueOf(got1).Pointer())
	assert.Equal(t, reflect.ValueOf(got1).Pointer(), reflect.ValueOf(got2).Pointer())
}

func TestRegistry_Errors(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("start", textNode("a")))

	t.Run("Duplicate", func(t *testing.T) {
		err := reg.Register("start", textNode("b"))
		assert.ErrorIs(t, err, domain.ErrDuplicateNode)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := reg.Resolve("missing")
		assert.ErrorIs(t, err, domain.ErrUnknownNode)
	})

	t.Run("Invalid", func(t *testing.T) {
		assert.ErrorIs(t, reg.Register("", textNode("x")), domain.ErrInvalidNode)
		assert.ErrorIs(t, reg.Register(domain.EndNodeID, textNode("x")), domain.ErrInvalidNode)
		assert.ErrorIs(t, reg.Register("nil", nil), domain.ErrInvalidNode)
	})

	t.Run("Sealed", func(t *testing.T) {
		reg.Seal()
		assert.ErrorIs(t, reg.Register("late", textNode("x")), domain.ErrRegistrySealed)
		_, err := reg.Resolve("start")
		assert.NoError(t, err, "sealing must not break resolution")
	})
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := registry.New()
	reg.MustRegister("a", textNode("a"))
	assert.Panics(t, func() { reg.MustRegister("a", textNode("a")) })
}

func TestRegistry_Validate(t *testing.T) {
	reg := registry.New()
	reg.MustRegister("a", textNode("a"), registry.WithEdges("b", domain.EndNodeID))
	reg.MustRegister("b", textNode("b"), registry.WithEdges("ghost", "phantom"))

	err := reg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownNode)
	assert.Contains(t, err.Error(), `"ghost" referenced by "b"`)
	assert.Contains(t, err.Error(), `"phantom" referenced by "b"`)

	reg2 := registry.New()
	reg2.MustRegister("a", textNode("a"), registry.WithEdges("a"))
	assert.NoError(t, reg2.Validate())
}

func TestRegistry_ListAndInspect(t *testing.T) {
	reg := registry.New()
	reg.MustRegister("b", textNode("b"), registry.WithHelp("help b"))
	reg.MustRegister("a", textNode("a"), registry.WithSource("menu.yaml"))

	assert.Equal(t, []string{"a", "b"}, reg.List())

	infos := reg.Inspect()
	require.Len(t, infos, 2)
	assert.Equal(t, "menu.yaml", infos[0].Source)
	assert.Equal(t, "help b", infos[1].Help)
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	reg := registry.New()
	for i := 0; i < 20; i++ {
		reg.MustRegister(fmt.Sprintf("n%d", i), textNode("x"))
	}
	reg.Seal()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := reg.Resolve(fmt.Sprintf("n%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}
