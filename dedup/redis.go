package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fulfillment:processed-events:"

// DefaultTTL bounds the registry size. It only needs to outlive the
// broker's redelivery window by a comfortable margin.
const DefaultTTL = 7 * 24 * time.Hour

type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	if client == nil {
		panic("redis client is nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisRegistry{client: client, ttl: ttl}
}

func (r *RedisRegistry) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+eventID).Result()
	if err != nil {
		return false, fmt.Errorf("could not check processed event %s: %w", eventID, err)
	}
	return n > 0, nil
}

func (r *RedisRegistry) MarkProcessed(ctx context.Context, eventID string) error {
	err := r.client.Set(ctx, keyPrefix+eventID, 1, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("could not mark event %s as processed: %w", eventID, err)
	}
	return nil
}
