package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"testing"

	"github.com/aretw0/tper/pkg/adapters/memory"
	"github.com/aretw0/tper/pkg/persistence/middleware"
	"github.com/aretw0/tper/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, middleware.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func encrypted(t *testing.T, cfg middleware.EncryptionConfig, next ports.Scratchpad) ports.Scratchpad {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return mw(next)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	store := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, memory.NewStore())
	ports.RunScratchpadContract(t, store)
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	store := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, backend)

	require.NoError(t, store.Put(ctx, "wf", "1/think", "my-secret-sauce"))

	raw, err := backend.Get(ctx, "wf", "1/think")
	require.NoError(t, err)
	assert.NotContains(t, raw, "my-secret-sauce")

	got, err := store.Get(ctx, "wf", "1/think")
	require.NoError(t, err)
	assert.Equal(t, "my-secret-sauce", got)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)

	old := encrypted(t, middleware.EncryptionConfig{ActiveKey: oldKey}, backend)
	require.NoError(t, old.Put(ctx, "wf", "1/plan", "1. step"))

	rotated := encrypted(t, middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}}, backend)
	got, err := rotated.Get(ctx, "wf", "1/plan")
	require.NoError(t, err)
	assert.Equal(t, "1. step", got)

	stranger := encrypted(t, middleware.EncryptionConfig{ActiveKey: newKey}, backend)
	_, err = stranger.Get(ctx, "wf", "1/plan")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsShortKeys(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.ErrorIs(t, err, middleware.ErrInvalidKey)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.ErrorIs(t, err, middleware.ErrInvalidKey)
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)

	got, err := middleware.ParseKey(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, got)

	got, err = middleware.ParseKey(base64.URLEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, got)

	_, err = middleware.ParseKey(base64.StdEncoding.EncodeToString([]byte("too short")))
	assert.ErrorIs(t, err, middleware.ErrInvalidKey)

	_, err = middleware.ParseKey("%%%")
	assert.Error(t, err)
}
