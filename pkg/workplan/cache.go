package workplan

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores effort multipliers keyed by task/skills digests so repeated
// planning runs don't re-ask the oracle for identical assignments.
type Cache interface {
	Get(ctx context.Context, key string) (float64, bool, error)
	Set(ctx context.Context, key string, value float64) error
}

// EstimateKey derives a stable cache key from the task content and the
// assignee's skills. Both sides are hashed separately so either changing
// invalidates the entry.
func EstimateKey(item WorkItem, skills map[string]int) string {
	task := sha1.Sum([]byte(strings.Join([]string{
		strings.ToLower(item.Title),
		strings.ToLower(item.Description),
		strings.ToLower(item.Category),
		strconv.Itoa(item.Complexity),
	}, "|")))

	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)
	var blob strings.Builder
	for _, name := range names {
		fmt.Fprintf(&blob, "%s=%d|", strings.ToLower(name), skills[name])
	}
	skillSum := sha1.Sum([]byte(blob.String()))

	return "estimate:" + hex.EncodeToString(task[:]) + ":" + hex.EncodeToString(skillSum[:])
}

// MemoryCache is an in-process Cache for single-run planning and tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]float64
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]float64)}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (float64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, key string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

// RedisCache shares estimate multipliers across processes with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps an existing Redis client. A zero ttl stores entries
// without expiry.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get implements Cache. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) (float64, bool, error) {
	v, err := c.client.Get(ctx, key).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("estimate cache get: %w", err)
	}
	return v, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, value float64) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("estimate cache set: %w", err)
	}
	return nil
}
