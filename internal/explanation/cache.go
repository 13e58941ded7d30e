// Package explanation caches generated per-document explanation text
// server-side, keyed by (applicationID, documentType). Eviction policy is a
// fixed TTL: explanations are derived from rule sets that change rarely, and
// a stale entry only costs one regeneration.
package explanation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"visapath/pkg/platform/sentinel"
)

// Cache is a Redis-backed explanation cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(applicationID, documentType string) string {
	return "explanation:" + applicationID + ":" + documentType
}

// Get returns the cached explanation, or sentinel.ErrNotFound on a miss or an
// expired entry.
func (c *Cache) Get(ctx context.Context, applicationID, documentType string) (string, error) {
	text, err := c.client.Get(ctx, key(applicationID, documentType)).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get explanation: %w", err)
	}
	return text, nil
}

// Put stores an explanation under the configured TTL.
func (c *Cache) Put(ctx context.Context, applicationID, documentType, text string) error {
	if err := c.client.Set(ctx, key(applicationID, documentType), text, c.ttl).Err(); err != nil {
		return fmt.Errorf("put explanation: %w", err)
	}
	return nil
}

// Invalidate removes one application's cached explanation for a document,
// used when the underlying rule set version changes.
func (c *Cache) Invalidate(ctx context.Context, applicationID, documentType string) error {
	if err := c.client.Del(ctx, key(applicationID, documentType)).Err(); err != nil {
		return fmt.Errorf("invalidate explanation: %w", err)
	}
	return nil
}
