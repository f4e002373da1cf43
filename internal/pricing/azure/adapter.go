// Package azure resolves live prices from the Azure Retail Prices API. The
// API is unauthenticated, so the adapter is always available.
package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/costcompass/costcompass/internal/domain"
	"github.com/costcompass/costcompass/internal/observability"
)

const defaultBaseURL = "https://prices.azure.com/api/retail/prices"

// Config carries the Retail Prices endpoint settings.
type Config struct {
	BaseURL string        `env:"AZURE_PRICES_BASE_URL" envDefault:"https://prices.azure.com/api/retail/prices"`
	Timeout time.Duration `env:"AZURE_PRICES_TIMEOUT" envDefault:"10s"`
}

// Adapter implements domain.PricingAdapter against the Retail Prices API.
type Adapter struct {
	baseURL string
	client  *http.Client
}

// NewAdapter builds an adapter with its own HTTP client.
func NewAdapter(cfg Config) *Adapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Adapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Provider returns the provider identifier.
func (a *Adapter) Provider() string {
	return domain.ProviderAzure
}

// retailPricesResponse is the subset of the Retail Prices payload we read.
type retailPricesResponse struct {
	Items []retailPriceItem `json:"Items"`
}

type retailPriceItem struct {
	CurrencyCode  string  `json:"currencyCode"`
	RetailPrice   float64 `json:"retailPrice"`
	UnitOfMeasure string  `json:"unitOfMeasure"`
	ServiceName   string  `json:"serviceName"`
	ProductName   string  `json:"productName"`
	SkuName       string  `json:"skuName"`
	ArmRegionName string  `json:"armRegionName"`
}

// Lookup resolves one consumption price. Every failure mode collapses to
// domain.ErrPriceUnavailable after logging the underlying cause.
func (a *Adapter) Lookup(
	ctx context.Context,
	category domain.Category,
	specID, region string,
) (*domain.PriceQuotation, error) {
	logger := observability.FromContext(ctx)

	filter, service, err := odataFilter(category, specID, region)
	if err != nil {
		logger.Warn("azure pricing request not constructable", observability.Error(err))
		return nil, domain.ErrPriceUnavailable
	}

	requestURL := fmt.Sprintf("%s?$filter=%s", a.baseURL, url.QueryEscape(filter))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, domain.ErrPriceUnavailable
	}

	resp, err := a.client.Do(req)
	if err != nil {
		logger.Warn("azure retail prices call failed",
			observability.String("service", service),
			observability.Error(err))
		return nil, domain.ErrPriceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("azure retail prices returned non-200",
			observability.String("service", service),
			observability.Int("status", resp.StatusCode))
		return nil, domain.ErrPriceUnavailable
	}

	var payload retailPricesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Warn("azure retail prices response unparseable", observability.Error(err))
		return nil, domain.ErrPriceUnavailable
	}
	if len(payload.Items) == 0 {
		logger.Warn("azure retail prices returned no items",
			observability.String("service", service),
			observability.String("spec_id", specID),
			observability.String("region", region))
		return nil, domain.ErrPriceUnavailable
	}

	item := payload.Items[0]
	quote := &domain.PriceQuotation{
		Provider:   domain.ProviderAzure,
		Service:    item.ServiceName,
		Region:     item.ArmRegionName,
		InstanceID: specID,
		Currency:   item.CurrencyCode,
		Source:     domain.SourceLive,
		ResolvedAt: time.Now().UTC(),
	}
	if category == domain.CategoryStorage {
		quote.PerGBMonth = item.RetailPrice
	} else {
		quote.Hourly = item.RetailPrice
		quote.Monthly = item.RetailPrice * domain.MonthlyHours
	}
	return quote, nil
}

// odataFilter builds the $filter expression for one category.
func odataFilter(category domain.Category, specID, region string) (filter, service string, err error) {
	switch category {
	case domain.CategoryCompute:
		return fmt.Sprintf(
			"serviceName eq 'Virtual Machines' and armSkuName eq '%s' and armRegionName eq '%s' and priceType eq 'Consumption'",
			specID, region), "Virtual Machines", nil

	case domain.CategoryStorage:
		return fmt.Sprintf(
			"serviceName eq 'Storage' and skuName eq '%s' and armRegionName eq '%s' and priceType eq 'Consumption'",
			specID, region), "Storage", nil

	case domain.CategoryDatabase:
		instance, _ := domain.SplitDatabaseSpecID(specID)
		return fmt.Sprintf(
			"serviceName eq 'SQL Database' and skuName eq '%s' and armRegionName eq '%s' and priceType eq 'Consumption'",
			instance, region), "SQL Database", nil

	default:
		return "", "", fmt.Errorf("no live pricing for category %q", category)
	}
}
