package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Contract(t *testing.T) {
	ports.RunResultCacheContract(t, memory.NewCache(0))
}

func TestCache_Eviction(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewCache(2)

	require.NoError(t, cache.Set(ctx, "a", []byte("1")))
	require.NoError(t, cache.Set(ctx, "b", []byte("2")))

	// Touch "a" so "b" becomes the least recently used.
	_, err := cache.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, cache.Set(ctx, "c", []byte("3")))
	assert.Equal(t, 2, cache.Len())

	_, err = cache.Get(ctx, "b")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)

	got, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", string(got))
}
