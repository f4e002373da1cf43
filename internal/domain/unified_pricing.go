package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/costcompass/costcompass/internal/metrics"
	"github.com/costcompass/costcompass/internal/observability"
)

const (
	// DefaultLookupTimeout bounds a single live pricing API call.
	DefaultLookupTimeout = 5 * time.Second

	// DefaultQuotationTTL is how long a resolved quotation stays cached.
	DefaultQuotationTTL = 24 * time.Hour
)

// UnifiedPricingService dispatches a lookup through cache, then the matching
// live adapter. On any failure it reports ErrPriceUnavailable; static
// fallback is deliberately left to the caller so this component stays
// provider-only.
type UnifiedPricingService struct {
	cache    PricingCache
	adapters map[string]PricingAdapter
	timeout  time.Duration
	ttl      time.Duration
}

// NewUnifiedPricingService creates a pricing service over the given cache and
// adapters. Providers without an adapter always resolve as unavailable.
func NewUnifiedPricingService(
	cache PricingCache,
	adapters []PricingAdapter,
	timeout time.Duration,
	ttl time.Duration,
) *UnifiedPricingService {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	if ttl <= 0 {
		ttl = DefaultQuotationTTL
	}

	byProvider := make(map[string]PricingAdapter, len(adapters))
	for _, adapter := range adapters {
		byProvider[adapter.Provider()] = adapter
	}

	return &UnifiedPricingService{
		cache:    cache,
		adapters: byProvider,
		timeout:  timeout,
		ttl:      ttl,
	}
}

// CacheKey builds the quotation cache key for one lookup.
func CacheKey(provider string, category Category, region, specID string) string {
	return fmt.Sprintf("%s:%s:%s:%s", provider, category, region, specID)
}

// HasAdapter reports whether live pricing is available for a provider.
func (s *UnifiedPricingService) HasAdapter(provider string) bool {
	_, ok := s.adapters[provider]
	return ok
}

// Resolve returns a quotation for the given provider/category/spec/region, or
// ErrPriceUnavailable. Algorithm: cache hit wins; otherwise the provider's
// adapter is invoked under a bounded timeout and a success populates the
// cache before returning.
func (s *UnifiedPricingService) Resolve(
	ctx context.Context,
	provider string,
	category Category,
	specID string,
	region string,
) (*PriceQuotation, error) {
	ctx = observability.WithProvider(ctx, provider)
	ctx = observability.WithCategory(ctx, string(category))
	logger := observability.FromContext(ctx)

	key := CacheKey(provider, category, region, specID)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		metrics.CacheHits.Inc()
		logger.Debug("quotation cache hit", observability.String("key", key))
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Warn("quotation cache get failed, continuing without cache",
			observability.Error(err))
	}
	metrics.CacheMisses.Inc()

	adapter, ok := s.adapters[provider]
	if !ok {
		return nil, ErrPriceUnavailable
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	quote, err := adapter.Lookup(lookupCtx, category, specID, region)
	metrics.LiveLookupDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LiveLookupFailures.WithLabelValues(provider).Inc()
		logger.Info("live pricing unavailable",
			observability.String("spec_id", specID),
			observability.String("region", region))
		return nil, ErrPriceUnavailable
	}

	if putErr := s.cache.Put(ctx, key, quote, s.ttl); putErr != nil {
		// A failed cache write only costs freshness on the next lookup.
		logger.Warn("quotation cache put failed", observability.Error(putErr))
	}

	logger.Debug("live quotation resolved",
		observability.String("spec_id", specID),
		observability.Float64("monthly", quote.MonthlyEquivalent()))
	return quote, nil
}

// ClearCache drops every cached quotation.
func (s *UnifiedPricingService) ClearCache(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear pricing cache: %w", err)
	}
	return nil
}
