package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/parley/pkg/adapters/memory"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}

func TestMemoryStore_IsolatesCallerMutations(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	s := domain.NewSession("s1", "", "start")
	s.Set("gold", 42)
	require.NoError(t, store.Save(ctx, "s1", s))

	s.Set("gold", 0)

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.Get("gold", nil))
}
