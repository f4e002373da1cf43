// Package redis provides a Redis-backed TTL cache for price quotations,
// letting several instances share one quotation pool.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/costcompass/costcompass/internal/domain"
	"github.com/costcompass/costcompass/internal/observability"
)

const keyPrefix = "costcompass:pricing:"

// Cache stores JSON-encoded quotations with Redis-native expiry.
type Cache struct {
	client *redis.Client
}

// New creates a cache on top of an existing client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the cached quotation or domain.ErrCacheMiss. Transport errors
// are logged and reported as misses so a degraded Redis never blocks pricing.
func (c *Cache) Get(ctx context.Context, key string) (*domain.PriceQuotation, error) {
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		observability.FromContext(ctx).Warn("redis cache read failed",
			observability.String("key", key),
			observability.Error(err))
		return nil, domain.ErrCacheMiss
	}

	var quote domain.PriceQuotation
	if err := json.Unmarshal(payload, &quote); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &quote, nil
}

// Put stores the quotation under key for the given TTL.
func (c *Cache) Put(ctx context.Context, key string, quote *domain.PriceQuotation, ttl time.Duration) error {
	payload, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("marshaling quotation: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("writing quotation to redis: %w", err)
	}
	return nil
}

// Clear drops every quotation key. Other keys in the database are untouched.
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning quotation keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deleting quotation keys: %w", err)
	}
	return nil
}
