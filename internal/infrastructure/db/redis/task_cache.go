package redis

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskhub/task-api/internal/core/ports"
)

const (
	cacheTTL = 30 * time.Second
	genKey   = "tasks:gen"
)

// TaskCache caches task listing pages in Redis. Invalidation uses a
// generation counter baked into every key: bumping the counter orphans all
// cached pages at once, and the orphans expire via TTL. No key scanning.
type TaskCache struct {
	client *redis.Client
}

// NewTaskCache creates a TaskCache wrapping the given Redis client.
func NewTaskCache(client *redis.Client) *TaskCache {
	return &TaskCache{client: client}
}

// Get returns the cached page for criteria, or (nil, nil) on a miss.
func (c *TaskCache) Get(ctx context.Context, criteria ports.FilterCriteria) (*ports.PagedResult, error) {
	key, err := c.key(ctx, criteria)
	if err != nil {
		return nil, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var result ports.PagedResult
	if err := json.Unmarshal(raw, &result); err != nil {
		// Treat a corrupt entry as a miss; it will be overwritten.
		return nil, nil
	}
	return &result, nil
}

// Set stores the page for criteria with the cache TTL.
func (c *TaskCache) Set(ctx context.Context, criteria ports.FilterCriteria, result *ports.PagedResult) error {
	key, err := c.key(ctx, criteria)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return c.client.Set(ctx, key, raw, cacheTTL).Err()
}

// Invalidate bumps the generation counter, orphaning every cached page.
func (c *TaskCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, genKey).Err()
}

func (c *TaskCache) key(ctx context.Context, criteria ports.FilterCriteria) (string, error) {
	gen, err := c.client.Get(ctx, genKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("cache generation: %w", err)
	}

	raw, err := json.Marshal(criteria)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("tasks:list:%d:%x", gen, sum[:8]), nil
}
