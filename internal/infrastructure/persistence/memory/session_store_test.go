package memory

import (
	"context"
	"testing"
	"time"

	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	_, err := store.Get(ctx, "recipeai:token")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "recipeai:token", []byte("abc"), 0))
	got, err := store.Get(ctx, "recipeai:token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[0] = 'x'
	again, _ := store.Get(ctx, "recipeai:token")
	assert.Equal(t, []byte("abc"), again, "callers must not alias stored bytes")

	require.NoError(t, store.Delete(ctx, "recipeai:token", "recipeai:user", "missing"))
	_, err = store.Get(ctx, "recipeai:token")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)
}

func TestSessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	now = now.Add(30 * time.Second)
	_, err := store.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)
}
