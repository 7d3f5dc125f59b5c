package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/tper/pkg/adapters/memory"
	"github.com/aretw0/tper/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactMiddleware_Masking(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	mw, err := middleware.NewRedactMiddleware([]string{`sk-[A-Za-z0-9]+`, `\d{3}-\d{2}-\d{4}`})
	require.NoError(t, err)
	store := mw(backend)

	require.NoError(t, store.Put(ctx, "wf", "1/execute/1", "key sk-abc123 and ssn 999-99-9999, public text"))

	raw, err := backend.Get(ctx, "wf", "1/execute/1")
	require.NoError(t, err)
	assert.Equal(t, "key *** and ssn ***, public text", raw)

	keys, err := store.List(ctx, "wf")
	require.NoError(t, err)
	assert.Equal(t, []string{"1/execute/1"}, keys)

	require.NoError(t, store.Purge(ctx, "wf"))
	assert.Equal(t, 0, backend.Len())
}

func TestRedactMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewRedactMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestChain_OrderIsOutermostFirst(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()

	redact, err := middleware.NewRedactMiddleware([]string{"secret"})
	require.NoError(t, err)
	encrypt, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)

	store := middleware.Chain(backend, redact, encrypt)
	require.NoError(t, store.Put(ctx, "wf", "1/review", "a secret verdict"))

	got, err := store.Get(ctx, "wf", "1/review")
	require.NoError(t, err)
	assert.Equal(t, "a *** verdict", got)

	raw, err := backend.Get(ctx, "wf", "1/review")
	require.NoError(t, err)
	assert.NotContains(t, raw, "verdict")
}
