package domain

import (
	"context"
	"errors"
	"time"
)

// ErrPriceUnavailable indicates that no live price could be resolved. Pricing
// adapters collapse every failure mode (network errors, rate limiting,
// malformed responses, empty result sets) to this error; static fallback is
// the caller's responsibility.
var ErrPriceUnavailable = errors.New("price unavailable")

// ErrCacheMiss indicates no cached quotation was found or it had expired.
var ErrCacheMiss = errors.New("cache miss")

// PricingAdapter is a thin client for one provider's pricing API.
type PricingAdapter interface {
	// Lookup resolves a quotation for the given category and
	// provider-specific spec identifier. It never returns transport or
	// schema errors to the caller: every failure is ErrPriceUnavailable.
	Lookup(ctx context.Context, category Category, specID, region string) (*PriceQuotation, error)

	// Provider returns the provider identifier this adapter serves.
	Provider() string
}

// PricingCache is a concurrency-safe TTL store of resolved quotations, shared
// by all in-flight provider tasks. Entries expire passively; expired entries
// are treated as absent and never served.
type PricingCache interface {
	// Get returns the cached quotation for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) (*PriceQuotation, error)

	// Put stores a quotation under key for the given TTL.
	Put(ctx context.Context, key string, quote *PriceQuotation, ttl time.Duration) error

	// Clear drops all cached quotations.
	Clear(ctx context.Context) error
}
