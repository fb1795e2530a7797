package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

func newTestMemoryCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	t.Cleanup(c.Stop)
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	resp := &core.AgentResponse{Intent: "Test", Routing: "A > B", Confidence: 0.9}
	require.NoError(t, c.Set(ctx, "hash-1", resp, time.Hour))

	got, ok := c.Get(ctx, "hash-1")
	require.True(t, ok)
	assert.Equal(t, "Test", got.Intent)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestMemoryCache(t)

	_, ok := c.Get(context.Background(), "absent")
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	resp := &core.AgentResponse{Intent: "Test"}
	require.NoError(t, c.Set(ctx, "hash-1", resp, -time.Second))

	_, ok := c.Get(ctx, "hash-1")
	assert.False(t, ok)
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "expired", &core.AgentResponse{Intent: "Old"}, -time.Second))
	require.NoError(t, c.Set(ctx, "live", &core.AgentResponse{Intent: "New"}, time.Hour))

	require.NoError(t, c.Cleanup(ctx))

	_, ok := c.Get(ctx, "expired")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "live")
	assert.True(t, ok)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "hash-1", &core.AgentResponse{Intent: "Test"}, time.Hour))
	require.NoError(t, c.Delete(ctx, "hash-1"))

	_, ok := c.Get(ctx, "hash-1")
	assert.False(t, ok)
}

func TestMemoryCacheReturnsCopies(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	stored := &core.AgentResponse{Intent: "Original", Items: []core.LineItem{{SKU: "X"}}}
	require.NoError(t, c.Set(ctx, "hash-1", stored, time.Hour))

	// Mutating the caller's copy must not affect the cached entry
	stored.Intent = "mutated"

	got, ok := c.Get(ctx, "hash-1")
	require.True(t, ok)
	assert.Equal(t, "Original", got.Intent)

	got.Items[0].SKU = "mutated"

	again, ok := c.Get(ctx, "hash-1")
	require.True(t, ok)
	assert.Equal(t, "X", again.Items[0].SKU)
}
