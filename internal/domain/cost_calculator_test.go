package domain_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/costcompass/costcompass/internal/domain"
	"github.com/costcompass/costcompass/internal/metrics"
)

func webShopRequirements() *domain.InfrastructureRequirements {
	return &domain.InfrastructureRequirements{
		Compute: []domain.ComputeSpec{
			{VCPUs: 2, RAMGB: 4, InstanceClass: "standard", Region: "us-east-1", InstanceCount: 2},
		},
		Storage:    domain.StorageSpec{SizeGB: 100, Class: "standard"},
		Database:   domain.DatabaseSpec{SizeGB: 50, Engine: "postgresql"},
		Networking: domain.NetworkingSpec{BandwidthGB: 200, LoadBalancerTier: "application"},
	}
}

func staticOnlyCalculator() *domain.CostCalculator {
	return domain.NewCostCalculator(nil, domain.NewStaticPricingTable())
}

func TestCalculateCostsValidation(t *testing.T) {
	calc := staticOnlyCalculator()

	_, err := calc.CalculateCosts(context.Background(), nil)
	require.Error(t, err)

	_, err = calc.CalculateCosts(context.Background(), &domain.InfrastructureRequirements{})
	require.Error(t, err)
}

func TestCalculateCostsStaticOnly(t *testing.T) {
	calc := staticOnlyCalculator()

	result, err := calc.CalculateCosts(context.Background(), webShopRequirements())
	require.NoError(t, err)

	require.Len(t, result.Providers, 4)
	for _, p := range result.Providers {
		require.Equal(t, domain.SourceStatic, p.Source)
		require.InDelta(t, p.Compute+p.Storage+p.Database+p.Networking, p.Total, 0.001)
		require.GreaterOrEqual(t, p.Compute, 0.0)
	}

	// Sorted ascending by total, endpoints match cheapest and most expensive.
	for i := 1; i < len(result.Providers); i++ {
		require.LessOrEqual(t, result.Providers[i-1].Total, result.Providers[i].Total)
	}
	require.Equal(t, result.Providers[0], result.Cheapest)
	require.Equal(t, result.Providers[3], result.MostExpensive)
	require.InDelta(t, result.MostExpensive.Total-result.Cheapest.Total, result.PotentialSavings, 0.011)

	// Exact spot check: two AWS standard instances at 2 vCPU / 4 GB.
	var awsBreakdown domain.CloudProviderCostBreakdown
	for _, p := range result.Providers {
		if p.Name == "AWS" {
			awsBreakdown = p
		}
	}
	require.InDelta(t, (2*0.0255+4*0.0035)*730*2, awsBreakdown.Compute, 0.01)
	require.InDelta(t, 100*0.023, awsBreakdown.Storage, 0.01)
	require.InDelta(t, 50*0.121, awsBreakdown.Database, 0.01)
	require.InDelta(t, 200*0.090+22.27, awsBreakdown.Networking, 0.01)
}

func TestCalculateCostsMultiCloudIsLowerBound(t *testing.T) {
	calc := staticOnlyCalculator()

	result, err := calc.CalculateCosts(context.Background(), webShopRequirements())
	require.NoError(t, err)

	require.LessOrEqual(t, result.MultiCloudOption.Cost, result.Cheapest.Total+0.011)
	require.Len(t, result.MultiCloudOption.Breakdown, 4)
	require.NotEmpty(t, result.Recommendations.SingleCloud)
	require.NotEmpty(t, result.Recommendations.MultiCloud)
	require.Contains(t, result.Recommendations.SingleCloud, result.Cheapest.Name)
}

func TestCalculateCostsLiveComputeProducesHybrid(t *testing.T) {
	adapter := &stubAdapter{
		provider: domain.ProviderAzure,
		lookupFunc: func(_ context.Context, category domain.Category, _, _ string) (*domain.PriceQuotation, error) {
			if category != domain.CategoryCompute {
				return nil, domain.ErrPriceUnavailable
			}
			return hourlyQuote(domain.ProviderAzure, 0.0416), nil
		},
	}
	pricing := domain.NewUnifiedPricingService(newMapCache(), []domain.PricingAdapter{adapter}, 0, 0)
	calc := domain.NewCostCalculator(pricing, domain.NewStaticPricingTable())

	result, err := calc.CalculateCosts(context.Background(), webShopRequirements())
	require.NoError(t, err)
	require.Len(t, result.Providers, 4)

	for _, p := range result.Providers {
		if p.Name != "AZURE" {
			require.Equal(t, domain.SourceStatic, p.Source)
			continue
		}
		require.Equal(t, domain.SourceHybrid, p.Source)
		require.InDelta(t, 0.0416*730*2, p.Compute, 0.01)
	}
}

func TestCalculateCostsAllAdaptersFailingEqualsStatic(t *testing.T) {
	adapter := &stubAdapter{
		provider: domain.ProviderAWS,
		lookupFunc: func(context.Context, domain.Category, string, string) (*domain.PriceQuotation, error) {
			return nil, domain.ErrPriceUnavailable
		},
	}
	pricing := domain.NewUnifiedPricingService(newMapCache(), []domain.PricingAdapter{adapter}, 0, 0)
	calc := domain.NewCostCalculator(pricing, domain.NewStaticPricingTable())

	withFailures, err := calc.CalculateCosts(context.Background(), webShopRequirements())
	require.NoError(t, err)

	pureStatic, err := staticOnlyCalculator().CalculateCosts(context.Background(), webShopRequirements())
	require.NoError(t, err)

	require.Equal(t, pureStatic.Providers, withFailures.Providers)
}

func TestCalculateCostsPanickingAdapterIsIsolated(t *testing.T) {
	adapter := &stubAdapter{
		provider: domain.ProviderGCP,
		lookupFunc: func(context.Context, domain.Category, string, string) (*domain.PriceQuotation, error) {
			panic("catalog corrupted")
		},
	}
	pricing := domain.NewUnifiedPricingService(newMapCache(), []domain.PricingAdapter{adapter}, 0, 0)
	calc := domain.NewCostCalculator(pricing, domain.NewStaticPricingTable())

	result, err := calc.CalculateCosts(context.Background(), webShopRequirements())
	require.NoError(t, err)
	require.Len(t, result.Providers, 4)

	pureStatic, err := staticOnlyCalculator().CalculateCosts(context.Background(), webShopRequirements())
	require.NoError(t, err)
	require.Equal(t, pureStatic.Providers, result.Providers)
}

func TestStaticFallbackMetricCountsOnlyDegradedLookups(t *testing.T) {
	computeFallbacks := metrics.StaticFallbacks.WithLabelValues(domain.ProviderAzure, "compute")
	before := testutil.ToFloat64(computeFallbacks)

	// Live pricing disabled entirely: static is the configured path, not a
	// degradation, so the counter must not move.
	_, err := staticOnlyCalculator().CalculateCosts(context.Background(), webShopRequirements())
	require.NoError(t, err)
	require.InDelta(t, before, testutil.ToFloat64(computeFallbacks), 0.001)

	// A present-but-failing adapter is a degradation and counts once per
	// compute spec.
	adapter := &stubAdapter{
		provider: domain.ProviderAzure,
		lookupFunc: func(context.Context, domain.Category, string, string) (*domain.PriceQuotation, error) {
			return nil, domain.ErrPriceUnavailable
		},
	}
	pricing := domain.NewUnifiedPricingService(newMapCache(), []domain.PricingAdapter{adapter}, 0, 0)
	calc := domain.NewCostCalculator(pricing, domain.NewStaticPricingTable())

	_, err = calc.CalculateCosts(context.Background(), webShopRequirements())
	require.NoError(t, err)
	require.InDelta(t, before+1, testutil.ToFloat64(computeFallbacks), 0.001)
}

func TestCalculateCostsInstanceCountDefaultsToOne(t *testing.T) {
	calc := staticOnlyCalculator()

	req := webShopRequirements()
	req.Compute[0].InstanceCount = 0

	result, err := calc.CalculateCosts(context.Background(), req)
	require.NoError(t, err)

	for _, p := range result.Providers {
		if p.Name == "AWS" {
			require.InDelta(t, (2*0.0255+4*0.0035)*730, p.Compute, 0.01)
		}
	}
}

func TestCalculateCostsRegionMultiplierApplies(t *testing.T) {
	calc := staticOnlyCalculator()

	req := webShopRequirements()
	req.Compute[0].Region = "eu-central-1"

	result, err := calc.CalculateCosts(context.Background(), req)
	require.NoError(t, err)

	for _, p := range result.Providers {
		if p.Name == "AWS" {
			require.InDelta(t, (2*0.0255+4*0.0035)*730*2*1.09, p.Compute, 0.01)
			// Storage is region independent; networking too.
			require.InDelta(t, 100*0.023, p.Storage, 0.01)
			require.InDelta(t, 50*0.121*1.09, p.Database, 0.01)
		}
	}
}
