package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no cached snapshot exists for a key.
var ErrCacheMiss = errors.New("snapshot cache miss")

type SnapshotCache struct {
	client *redis.Client
}

func NewSnapshotCache(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{
		client: client,
	}
}

// key format: "analytics:{kind}:{window}"
func cacheKey(kind, window string) string {
	if window == "" {
		window = "all"
	}
	return fmt.Sprintf("analytics:%s:%s", kind, window)
}

func (c *SnapshotCache) Store(ctx context.Context, kind, window string, payload any, ttl time.Duration) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = c.client.Set(ctx, cacheKey(kind, window), jsonData, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store snapshot in Redis: %w", err)
	}

	return nil
}

func (c *SnapshotCache) Get(ctx context.Context, kind, window string, dest any) error {
	val, err := c.client.Get(ctx, cacheKey(kind, window)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get snapshot from Redis: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return nil
}

// Invalidate drops every cached window of a kind. Called after new orders
// are ingested so stale analytics never get served.
func (c *SnapshotCache) Invalidate(ctx context.Context, kind string) error {
	pattern := fmt.Sprintf("analytics:%s:*", kind)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate snapshot key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan snapshot keys: %w", err)
	}

	return nil
}

// InvalidateAll drops the whole analytics cache.
func (c *SnapshotCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "analytics:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate snapshot key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan snapshot keys: %w", err)
	}

	return nil
}
