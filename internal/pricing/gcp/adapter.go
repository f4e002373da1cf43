// Package gcp resolves GCP prices from a bundled copy of the published list
// prices. The Cloud Billing Catalog API needs a billing account and an API
// key, so the catalog ships in-process and lookups never leave the binary.
package gcp

import (
	"context"
	"time"

	"github.com/costcompass/costcompass/internal/domain"
	"github.com/costcompass/costcompass/internal/observability"
)

// Adapter implements domain.PricingAdapter on the bundled catalog.
type Adapter struct{}

// NewAdapter creates the adapter. It needs no configuration.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Provider returns the provider identifier.
func (a *Adapter) Provider() string {
	return domain.ProviderGCP
}

// Lookup resolves one catalog price. Specs the catalog does not carry
// resolve to domain.ErrPriceUnavailable.
func (a *Adapter) Lookup(
	ctx context.Context,
	category domain.Category,
	specID, region string,
) (*domain.PriceQuotation, error) {
	quote := &domain.PriceQuotation{
		Provider:   domain.ProviderGCP,
		Region:     region,
		InstanceID: specID,
		Currency:   "USD",
		Source:     domain.SourceLive,
		ResolvedAt: time.Now().UTC(),
	}
	factor := regionMultiplier(region)

	switch category {
	case domain.CategoryCompute:
		hourly, ok := machineHourly[specID]
		if !ok {
			return nil, a.unavailable(ctx, category, specID, region)
		}
		quote.Service = "Compute Engine"
		quote.Hourly = hourly * factor
		quote.Monthly = quote.Hourly * domain.MonthlyHours
		return quote, nil

	case domain.CategoryStorage:
		perGB, ok := storagePerGBMonth[specID]
		if !ok {
			return nil, a.unavailable(ctx, category, specID, region)
		}
		quote.Service = "Cloud Storage"
		quote.PerGBMonth = perGB * factor
		return quote, nil

	case domain.CategoryDatabase:
		instance, engine := domain.SplitDatabaseSpecID(specID)
		tierHourly, ok := databaseTierHourly[instance]
		if !ok {
			return nil, a.unavailable(ctx, category, specID, region)
		}
		engineFactor, ok := databaseEngineFactor[engine]
		if !ok {
			return nil, a.unavailable(ctx, category, specID, region)
		}
		quote.Service = "Cloud SQL"
		quote.Hourly = tierHourly * engineFactor * factor
		quote.Monthly = quote.Hourly * domain.MonthlyHours
		return quote, nil

	default:
		return nil, a.unavailable(ctx, category, specID, region)
	}
}

func (a *Adapter) unavailable(ctx context.Context, category domain.Category, specID, region string) error {
	observability.FromContext(ctx).Warn("gcp catalog has no entry",
		observability.String("gcp_category", string(category)),
		observability.String("spec_id", specID),
		observability.String("region", region))
	return domain.ErrPriceUnavailable
}
