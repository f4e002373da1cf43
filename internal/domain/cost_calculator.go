package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/costcompass/costcompass/internal/metrics"
	"github.com/costcompass/costcompass/internal/observability"
)

const defaultWorkloadRegion = "us-east-1"

// CostCalculator orchestrates the per-provider, per-category cost
// computation: live pricing where available, static rate card otherwise.
type CostCalculator struct {
	pricing *UnifiedPricingService // nil disables live pricing entirely
	static  *StaticPricingTable
}

// NewCostCalculator creates a calculator. A nil pricing service degrades
// every lookup to the static table.
func NewCostCalculator(pricing *UnifiedPricingService, static *StaticPricingTable) *CostCalculator {
	return &CostCalculator{
		pricing: pricing,
		static:  static,
	}
}

// pricedBy is one category's resolved monthly cost and its data source.
type pricedBy struct {
	amount float64
	source string
}

// priceStrategy attempts to price a category, reporting false when the
// strategy has no answer. Strategies are tried in order; the first success
// wins, which keeps the fallback chain auditable.
type priceStrategy func(ctx context.Context) (pricedBy, bool)

func firstOf(ctx context.Context, strategies ...priceStrategy) pricedBy {
	for _, strategy := range strategies {
		if price, ok := strategy(ctx); ok {
			return price
		}
	}
	// The static strategy always succeeds, so this is unreachable with a
	// well-formed strategy list.
	return pricedBy{amount: 0, source: SourceStatic}
}

// CalculateCosts produces a comparable monthly cost for each provider, the
// cross-provider minimum bundle, and templated recommendations. One provider
// task failing, however completely, never prevents the others from
// completing: the task boundary catches panics and substitutes a fully
// static computation, so exactly four breakdowns are always returned.
func (c *CostCalculator) CalculateCosts(
	ctx context.Context,
	req *InfrastructureRequirements,
) (*CostCalculationResult, error) {
	if req == nil {
		return nil, errors.New("requirements cannot be nil")
	}
	if len(req.Compute) == 0 {
		return nil, errors.New("requirements must contain at least one compute spec")
	}

	primaryRegion := req.Compute[0].Region
	if primaryRegion == "" {
		primaryRegion = defaultWorkloadRegion
	}
	regionMultiplier := c.static.RegionMultiplier(primaryRegion)

	breakdowns := make([]CloudProviderCostBreakdown, len(ProviderOrder))

	var wg sync.WaitGroup
	for i, provider := range ProviderOrder {
		wg.Add(1)
		go func(i int, provider string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					observability.FromContext(ctx).Error("provider cost task failed, using static pricing",
						observability.String("provider", provider),
						observability.String("panic", fmt.Sprint(r)))
					breakdowns[i] = c.staticBreakdown(provider, req, primaryRegion, regionMultiplier)
				}
			}()
			breakdowns[i] = c.providerBreakdown(ctx, provider, req, primaryRegion, regionMultiplier)
		}(i, provider)
	}
	wg.Wait()

	sorted := make([]CloudProviderCostBreakdown, len(breakdowns))
	copy(sorted, breakdowns)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Total < sorted[b].Total })

	cheapest := sorted[0]
	mostExpensive := sorted[len(sorted)-1]
	potentialSavings := round2(mostExpensive.Total - cheapest.Total)

	multiCloud := OptimizeMultiCloud(sorted)

	return &CostCalculationResult{
		Providers:        sorted,
		Cheapest:         cheapest,
		MostExpensive:    mostExpensive,
		PotentialSavings: potentialSavings,
		MultiCloudOption: multiCloud,
		Recommendations: Recommendations{
			SingleCloud: fmt.Sprintf(
				"%s offers the best overall value at $%.2f/month with competitive pricing across all services",
				cheapest.Name, cheapest.Total),
			MultiCloud: fmt.Sprintf(
				"Hybrid approach could save an additional $%.2f/month by optimizing service placement",
				round2(cheapest.Total-multiCloud.Cost)),
		},
	}, nil
}

// ClearCache drops every cached quotation. No-op when live pricing is disabled.
func (c *CostCalculator) ClearCache(ctx context.Context) error {
	if c.pricing == nil {
		return nil
	}
	return c.pricing.ClearCache(ctx)
}

// providerBreakdown computes the four category costs for one provider. Each
// category falls back from live pricing to the static table independently.
func (c *CostCalculator) providerBreakdown(
	ctx context.Context,
	provider string,
	req *InfrastructureRequirements,
	primaryRegion string,
	regionMultiplier float64,
) CloudProviderCostBreakdown {
	compute := c.computeCost(ctx, provider, req.Compute, regionMultiplier)
	storage := firstOf(ctx,
		c.tryLiveStorage(provider, req.Storage, primaryRegion),
		c.tryStatic(provider, CategoryStorage, func() float64 {
			return c.static.StorageMonthly(provider, req.Storage)
		}),
	)
	database := firstOf(ctx,
		c.tryLiveDatabase(provider, req.Database, primaryRegion),
		c.tryStatic(provider, CategoryDatabase, func() float64 {
			return c.static.DatabaseMonthly(provider, req.Database, regionMultiplier)
		}),
	)
	// Networking has no live pricing source for any provider.
	networking := pricedBy{
		amount: c.static.NetworkingMonthly(provider, req.Networking),
		source: SourceStatic,
	}

	return assembleBreakdown(provider, compute, storage, database, networking)
}

// staticBreakdown prices every category from the rate card. Used when a
// provider task fails outright and as the reference for live-free operation.
func (c *CostCalculator) staticBreakdown(
	provider string,
	req *InfrastructureRequirements,
	_ string,
	regionMultiplier float64,
) CloudProviderCostBreakdown {
	var compute float64
	for _, spec := range req.Compute {
		compute += c.static.ComputeMonthly(provider, spec, regionMultiplier) * float64(instanceCount(spec))
	}

	return assembleBreakdown(provider,
		pricedBy{amount: compute, source: SourceStatic},
		pricedBy{amount: c.static.StorageMonthly(provider, req.Storage), source: SourceStatic},
		pricedBy{amount: c.static.DatabaseMonthly(provider, req.Database, regionMultiplier), source: SourceStatic},
		pricedBy{amount: c.static.NetworkingMonthly(provider, req.Networking), source: SourceStatic},
	)
}

// computeCost accumulates instanceCount x unit cost across every compute
// spec. Specs resolve live or static independently of one another.
func (c *CostCalculator) computeCost(
	ctx context.Context,
	provider string,
	specs []ComputeSpec,
	regionMultiplier float64,
) pricedBy {
	var total float64
	var liveSpecs, staticSpecs int

	for _, spec := range specs {
		unit := firstOf(ctx,
			c.tryLiveCompute(provider, spec),
			c.tryStatic(provider, CategoryCompute, func() float64 {
				return c.static.ComputeMonthly(provider, spec, regionMultiplier)
			}),
		)
		total += unit.amount * float64(instanceCount(spec))
		if unit.source == SourceLive {
			liveSpecs++
		} else {
			staticSpecs++
		}
	}

	return pricedBy{amount: total, source: mixedSource(liveSpecs, staticSpecs)}
}

// tryLiveCompute prices a single instance of one compute spec from the live
// pricing service. Providers without an adapter (Oracle always) report no
// answer without counting as a failed attempt.
func (c *CostCalculator) tryLiveCompute(provider string, spec ComputeSpec) priceStrategy {
	return func(ctx context.Context) (pricedBy, bool) {
		if c.pricing == nil || !c.pricing.HasAdapter(provider) {
			return pricedBy{}, false
		}

		specID := InstanceIDFor(provider, spec)
		region := RegionFor(provider, spec.Region)
		quote, err := c.pricing.Resolve(ctx, provider, CategoryCompute, specID, region)
		if err != nil {
			return c.liveAttemptFailed(provider, CategoryCompute)
		}

		monthly := quote.MonthlyEquivalent()
		if monthly <= 0 {
			return c.liveAttemptFailed(provider, CategoryCompute)
		}
		return pricedBy{amount: monthly, source: SourceLive}, true
	}
}

func (c *CostCalculator) tryLiveStorage(provider string, spec StorageSpec, workloadRegion string) priceStrategy {
	return func(ctx context.Context) (pricedBy, bool) {
		if c.pricing == nil || !c.pricing.HasAdapter(provider) {
			return pricedBy{}, false
		}

		specID := StorageSpecID(provider, spec.Class)
		region := RegionFor(provider, workloadRegion)
		quote, err := c.pricing.Resolve(ctx, provider, CategoryStorage, specID, region)
		if err != nil || quote.PerGBMonth <= 0 {
			return c.liveAttemptFailed(provider, CategoryStorage)
		}
		return pricedBy{amount: spec.SizeGB * quote.PerGBMonth, source: SourceLive}, true
	}
}

func (c *CostCalculator) tryLiveDatabase(provider string, spec DatabaseSpec, workloadRegion string) priceStrategy {
	return func(ctx context.Context) (pricedBy, bool) {
		if c.pricing == nil || !c.pricing.HasAdapter(provider) {
			return pricedBy{}, false
		}

		specID := DatabaseSpecID(provider, spec)
		region := RegionFor(provider, workloadRegion)
		quote, err := c.pricing.Resolve(ctx, provider, CategoryDatabase, specID, region)
		if err != nil {
			return c.liveAttemptFailed(provider, CategoryDatabase)
		}

		monthly := quote.MonthlyEquivalent()
		if monthly <= 0 {
			return c.liveAttemptFailed(provider, CategoryDatabase)
		}
		return pricedBy{amount: monthly, source: SourceLive}, true
	}
}

// liveAttemptFailed records a failed live attempt so the fallback metric only
// counts categories that actually degraded, not pure-static deployments.
func (c *CostCalculator) liveAttemptFailed(provider string, category Category) (pricedBy, bool) {
	metrics.StaticFallbacks.WithLabelValues(provider, string(category)).Inc()
	return pricedBy{}, false
}

// tryStatic prices from the rate card. It always succeeds.
func (c *CostCalculator) tryStatic(provider string, _ Category, price func() float64) priceStrategy {
	return func(_ context.Context) (pricedBy, bool) {
		return pricedBy{amount: price(), source: SourceStatic}, true
	}
}

func assembleBreakdown(provider string, compute, storage, database, networking pricedBy) CloudProviderCostBreakdown {
	computeCost := round2(compute.amount)
	storageCost := round2(storage.amount)
	databaseCost := round2(database.amount)
	networkingCost := round2(networking.amount)

	return CloudProviderCostBreakdown{
		Name:       strings.ToUpper(provider),
		Compute:    computeCost,
		Storage:    storageCost,
		Database:   databaseCost,
		Networking: networkingCost,
		Total:      round2(computeCost + storageCost + databaseCost + networkingCost),
		Source:     breakdownSource(compute, storage, database, networking),
	}
}

// breakdownSource labels the breakdown live, static, or hybrid depending on
// which sources backed its categories.
func breakdownSource(prices ...pricedBy) string {
	var live, static int
	for _, p := range prices {
		switch p.source {
		case SourceLive:
			live++
		case SourceHybrid:
			live++
			static++
		default:
			static++
		}
	}
	return mixedSource(live, static)
}

func mixedSource(live, static int) string {
	switch {
	case live > 0 && static > 0:
		return SourceHybrid
	case live > 0:
		return SourceLive
	default:
		return SourceStatic
	}
}

func instanceCount(spec ComputeSpec) int {
	if spec.InstanceCount < 1 {
		return 1
	}
	return spec.InstanceCount
}

// round2 rounds to cents. Decimal arithmetic avoids the float drift of
// math.Round(v*100)/100 on large totals.
func round2(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded
}
