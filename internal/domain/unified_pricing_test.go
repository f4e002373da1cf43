package domain_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/costcompass/costcompass/internal/domain"
)

// stubAdapter is a scriptable PricingAdapter for testing.
type stubAdapter struct {
	provider   string
	lookupFunc func(ctx context.Context, category domain.Category, specID, region string) (*domain.PriceQuotation, error)

	mu    sync.Mutex
	calls int
}

func (s *stubAdapter) Provider() string {
	return s.provider
}

func (s *stubAdapter) Lookup(
	ctx context.Context,
	category domain.Category,
	specID, region string,
) (*domain.PriceQuotation, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.lookupFunc(ctx, category, specID, region)
}

func (s *stubAdapter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// mapCache is a PricingCache over a plain map, ignoring TTL.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]*domain.PriceQuotation
	getErr  error
	putErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*domain.PriceQuotation)}
}

func (c *mapCache) Get(_ context.Context, key string) (*domain.PriceQuotation, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if quote, ok := c.entries[key]; ok {
		return quote, nil
	}
	return nil, domain.ErrCacheMiss
}

func (c *mapCache) Put(_ context.Context, key string, quote *domain.PriceQuotation, _ time.Duration) error {
	if c.putErr != nil {
		return c.putErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = quote
	return nil
}

func (c *mapCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*domain.PriceQuotation)
	return nil
}

func hourlyQuote(provider string, hourly float64) *domain.PriceQuotation {
	return &domain.PriceQuotation{
		Provider:   provider,
		Hourly:     hourly,
		Monthly:    hourly * domain.MonthlyHours,
		Currency:   "USD",
		Source:     domain.SourceLive,
		ResolvedAt: time.Now().UTC(),
	}
}

func TestCacheKey(t *testing.T) {
	key := domain.CacheKey(domain.ProviderAWS, domain.CategoryCompute, "us-east-1", "t3.small")
	require.Equal(t, "aws:compute:us-east-1:t3.small", key)
}

func TestResolveCachesLiveQuotes(t *testing.T) {
	adapter := &stubAdapter{
		provider: domain.ProviderAWS,
		lookupFunc: func(context.Context, domain.Category, string, string) (*domain.PriceQuotation, error) {
			return hourlyQuote(domain.ProviderAWS, 0.0416), nil
		},
	}
	svc := domain.NewUnifiedPricingService(newMapCache(), []domain.PricingAdapter{adapter}, 0, 0)

	first, err := svc.Resolve(context.Background(), domain.ProviderAWS, domain.CategoryCompute, "t3.medium", "us-east-1")
	require.NoError(t, err)
	require.InDelta(t, 0.0416*730, first.MonthlyEquivalent(), 0.0001)

	second, err := svc.Resolve(context.Background(), domain.ProviderAWS, domain.CategoryCompute, "t3.medium", "us-east-1")
	require.NoError(t, err)
	require.InDelta(t, first.MonthlyEquivalent(), second.MonthlyEquivalent(), 0.0001)

	// Second resolve was served from cache.
	require.Equal(t, 1, adapter.callCount())
}

func TestResolveDistinctSpecsMissSeparately(t *testing.T) {
	adapter := &stubAdapter{
		provider: domain.ProviderAWS,
		lookupFunc: func(context.Context, domain.Category, string, string) (*domain.PriceQuotation, error) {
			return hourlyQuote(domain.ProviderAWS, 0.05), nil
		},
	}
	svc := domain.NewUnifiedPricingService(newMapCache(), []domain.PricingAdapter{adapter}, 0, 0)

	_, err := svc.Resolve(context.Background(), domain.ProviderAWS, domain.CategoryCompute, "t3.small", "us-east-1")
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), domain.ProviderAWS, domain.CategoryCompute, "t3.small", "eu-west-1")
	require.NoError(t, err)

	require.Equal(t, 2, adapter.callCount())
}

func TestResolveAdapterFailure(t *testing.T) {
	adapter := &stubAdapter{
		provider: domain.ProviderAzure,
		lookupFunc: func(context.Context, domain.Category, string, string) (*domain.PriceQuotation, error) {
			return nil, domain.ErrPriceUnavailable
		},
	}
	cache := newMapCache()
	svc := domain.NewUnifiedPricingService(cache, []domain.PricingAdapter{adapter}, 0, 0)

	_, err := svc.Resolve(context.Background(), domain.ProviderAzure, domain.CategoryCompute, "Standard_B2s", "eastus")
	require.ErrorIs(t, err, domain.ErrPriceUnavailable)
	require.Empty(t, cache.entries)
}

func TestResolveNoAdapter(t *testing.T) {
	svc := domain.NewUnifiedPricingService(newMapCache(), nil, 0, 0)

	_, err := svc.Resolve(context.Background(), domain.ProviderOracle, domain.CategoryCompute, "VM.Standard.E4.Flex.1", "us-ashburn-1")
	require.ErrorIs(t, err, domain.ErrPriceUnavailable)
	require.False(t, svc.HasAdapter(domain.ProviderOracle))
}

func TestResolveSlowAdapterTimesOut(t *testing.T) {
	adapter := &stubAdapter{
		provider: domain.ProviderAWS,
		lookupFunc: func(ctx context.Context, _ domain.Category, _, _ string) (*domain.PriceQuotation, error) {
			select {
			case <-ctx.Done():
				return nil, domain.ErrPriceUnavailable
			case <-time.After(time.Second):
				return hourlyQuote(domain.ProviderAWS, 0.05), nil
			}
		},
	}
	svc := domain.NewUnifiedPricingService(newMapCache(), []domain.PricingAdapter{adapter}, 10*time.Millisecond, 0)

	start := time.Now()
	_, err := svc.Resolve(context.Background(), domain.ProviderAWS, domain.CategoryCompute, "t3.small", "us-east-1")
	require.ErrorIs(t, err, domain.ErrPriceUnavailable)
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestResolveToleratesBrokenCache(t *testing.T) {
	cache := newMapCache()
	cache.getErr = errors.New("connection refused")
	cache.putErr = errors.New("connection refused")

	adapter := &stubAdapter{
		provider: domain.ProviderAWS,
		lookupFunc: func(context.Context, domain.Category, string, string) (*domain.PriceQuotation, error) {
			return hourlyQuote(domain.ProviderAWS, 0.05), nil
		},
	}
	svc := domain.NewUnifiedPricingService(cache, []domain.PricingAdapter{adapter}, 0, 0)

	quote, err := svc.Resolve(context.Background(), domain.ProviderAWS, domain.CategoryCompute, "t3.small", "us-east-1")
	require.NoError(t, err)
	require.InDelta(t, 0.05*730, quote.MonthlyEquivalent(), 0.0001)
}

func TestClearCache(t *testing.T) {
	cache := newMapCache()
	cache.entries["aws:compute:us-east-1:t3.small"] = hourlyQuote(domain.ProviderAWS, 0.05)

	svc := domain.NewUnifiedPricingService(cache, nil, 0, 0)
	require.NoError(t, svc.ClearCache(context.Background()))
	require.Empty(t, cache.entries)
}
