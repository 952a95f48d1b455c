package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRegistry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	registry := NewRedisRegistry(client, time.Hour)
	ctx := context.Background()
	eventID := uuid.NewString()

	processed, err := registry.IsProcessed(ctx, eventID)
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, registry.MarkProcessed(ctx, eventID))

	processed, err = registry.IsProcessed(ctx, eventID)
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestRedisRegistryEntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	registry := NewRedisRegistry(client, time.Minute)
	ctx := context.Background()
	eventID := uuid.NewString()

	require.NoError(t, registry.MarkProcessed(ctx, eventID))
	mr.FastForward(2 * time.Minute)

	processed, err := registry.IsProcessed(ctx, eventID)
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestMemoryRegistry(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()
	eventID := uuid.NewString()

	processed, err := registry.IsProcessed(ctx, eventID)
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, registry.MarkProcessed(ctx, eventID))

	processed, err = registry.IsProcessed(ctx, eventID)
	require.NoError(t, err)
	assert.True(t, processed)
}
