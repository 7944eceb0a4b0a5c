package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSessionStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	first := NewSessionStore(path, zaptest.NewLogger(t))
	require.NoError(t, first.Set(ctx, "recipeai:token", []byte("jwt"), 0))
	require.NoError(t, first.Set(ctx, "recipeai:user", []byte(`{"id":"u1"}`), 0))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second := NewSessionStore(path, zaptest.NewLogger(t))
	got, err := second.Get(ctx, "recipeai:user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u1"}`, string(got))

	require.NoError(t, second.Delete(ctx, "recipeai:token", "recipeai:user"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty session should remove the file")

	_, err = first.Get(ctx, "recipeai:token")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)
}

func TestSessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(filepath.Join(t.TempDir(), "s.json"), nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))
	now = now.Add(2 * time.Hour)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)
}

func TestSessionStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewSessionStore(path, zaptest.NewLogger(t))
	_, err := store.Get(context.Background(), "recipeai:token")
	assert.ErrorIs(t, err, outbound.ErrKeyNotFound)

	require.NoError(t, store.Set(context.Background(), "recipeai:token", []byte("t"), 0))
	got, err := store.Get(context.Background(), "recipeai:token")
	require.NoError(t, err)
	assert.Equal(t, []byte("t"), got)
}
