package ports

import (
	"context"
	"testing"

	"github.com/aretw0/tper/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunScratchpadContract runs a suite of tests to verify that a Scratchpad implementation
// adheres to the defined interface contract.
func RunScratchpadContract(t *testing.T, store Scratchpad) {
	ctx := context.Background()

	t.Run("Put and Get", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Put(ctx, id, "1/think", "analysis"))

		got, err := store.Get(ctx, id, "1/think")
		require.NoError(t, err)
		assert.Equal(t, "analysis", got)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, uuid.NewString(), "1/think")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("Overwrite keeps first-write order", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Put(ctx, id, "1/think", "a"))
		require.NoError(t, store.Put(ctx, id, "1/plan", "b"))
		require.NoError(t, store.Put(ctx, id, "1/think", "c"))

		keys, err := store.List(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"1/think", "1/plan"}, keys)

		got, err := store.Get(ctx, id, "1/think")
		require.NoError(t, err)
		assert.Equal(t, "c", got)
	})

	t.Run("Isolation between workflows", func(t *testing.T) {
		a, b := uuid.NewString(), uuid.NewString()
		require.NoError(t, store.Put(ctx, a, "1/plan", "plan-a"))

		_, err := store.Get(ctx, b, "1/plan")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

		keys, err := store.List(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("Purge", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Put(ctx, id, "1/think", "a"))
		require.NoError(t, store.Put(ctx, id, "1/review", "b"))

		require.NoError(t, store.Purge(ctx, id))

		keys, err := store.List(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, keys)
		_, err = store.Get(ctx, id, "1/think")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

		// Idempotent
		assert.NoError(t, store.Purge(ctx, id))
	})
}
