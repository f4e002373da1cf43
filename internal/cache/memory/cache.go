// Package memory provides an in-process TTL cache for price quotations.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/costcompass/costcompass/internal/domain"
)

type entry struct {
	quote     domain.PriceQuotation
	expiresAt time.Time
}

// Cache is a mutex-guarded TTL map. Expiry is lazy: expired entries are
// treated as absent on read and dropped wholesale on Clear or overwrite.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Get returns the cached quotation or domain.ErrCacheMiss. The returned
// pointer refers to a copy, so callers may freely mutate it.
func (c *Cache) Get(_ context.Context, key string) (*domain.PriceQuotation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, domain.ErrCacheMiss
	}

	quote := e.quote
	return &quote, nil
}

// Put stores a copy of the quotation under key for the given TTL.
func (c *Cache) Put(_ context.Context, key string, quote *domain.PriceQuotation, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		quote:     *quote,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Clear drops every entry.
func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	return nil
}
