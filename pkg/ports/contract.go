package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		s := domain.NewSession(sessionID, "user-1", "start")
		s.Set("name", "Aldric")
		s.Set("gold", 42)
		s.Advance("confirm")

		require.NoError(t, store.Save(ctx, sessionID, s), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "confirm", loaded.CurrentNode())
		assert.Equal(t, "user-1", loaded.UserID)
		assert.Equal(t, []string{"start", "confirm"}, loaded.History)
		assert.Equal(t, "Aldric", loaded.Get("name", nil))
		assert.Equal(t, 42, loaded.Get("gold", nil))
		assert.False(t, loaded.IsTerminated())
	})

	t.Run("Value Types", func(t *testing.T) {
		id := sessionID + "-types"
		s := domain.NewSession(id, "", "start")
		s.Set("count", 3)
		s.Set("ratio", 2.5)
		s.Set("label", "x")
		s.Set("ready", true)
		s.Set("items", []any{1, "two"})
		s.Set("nested", map[string]any{"n": 7})

		require.NoError(t, store.Save(ctx, id, s))
		defer func() { _ = store.Delete(ctx, id) }()

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)

		count, ok := loaded.Get("count", nil).(int)
		require.True(t, ok, "whole numbers read back as int, got %T", loaded.Get("count", nil))
		assert.Equal(t, 3, count)
		assert.Equal(t, 2.5, loaded.Get("ratio", nil))
		assert.Equal(t, "x", loaded.Get("label", nil))
		assert.Equal(t, true, loaded.Get("ready", nil))
		assert.Equal(t, []any{1, "two"}, loaded.Get("items", nil))
		assert.Equal(t, map[string]any{"n": 7}, loaded.Get("nested", nil))

		// A value read back can be used the way it was written.
		loaded.Set("count", loaded.Get("count", 0).(int)+1)
		require.NoError(t, store.Save(ctx, id, loaded))
		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 4, again.Get("count", nil))
	})

	t.Run("Load Returns A Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Set("name", "Changed")

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Aldric", again.Get("name", nil))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSession(sessionID, "", "start")))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewSession(id1, "", "start")))
		require.NoError(t, store.Save(ctx, id2, domain.NewSession(id2, "", "start")))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
