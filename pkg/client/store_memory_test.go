package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	val, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	val, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, store.Delete(ctx, "k"))
	val, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestMemoryStore_LazyExpiry(t *testing.T) {
	now := time.Now()
	store := &memoryStore{
		entries: make(map[string]memEntry),
		now:     func() time.Time { return now },
	}
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	now = now.Add(2 * time.Minute)
	val, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val, "expired entries are treated as absent")

	// Expired entry was purged on access.
	store.mu.RLock()
	_, present := store.entries["k"]
	store.mu.RUnlock()
	assert.False(t, present)
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	now := time.Now()
	store := &memoryStore{
		entries: make(map[string]memEntry),
		now:     func() time.Time { return now },
	}
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	now = now.Add(24 * time.Hour)

	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}
