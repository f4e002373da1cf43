// Package aws resolves live prices from the AWS Price List API.
package aws

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/pricing"
	"github.com/aws/aws-sdk-go/service/pricing/pricingiface"

	"github.com/costcompass/costcompass/internal/domain"
	"github.com/costcompass/costcompass/internal/observability"
)

// The Price List API is only served out of us-east-1 and ap-south-1,
// regardless of which region is being priced.
const pricingEndpointRegion = "us-east-1"

// Config carries the credentials for the Price List API.
type Config struct {
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

// Enabled reports whether both credentials are present.
func (c Config) Enabled() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Adapter implements domain.PricingAdapter against the AWS Price List API.
type Adapter struct {
	api pricingiface.PricingAPI
}

// NewAdapter builds an adapter from static credentials.
func NewAdapter(cfg Config) (*Adapter, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("aws pricing adapter requires AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(pricingEndpointRegion),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("creating aws session: %w", err)
	}

	return &Adapter{api: pricing.New(sess)}, nil
}

// NewAdapterWithAPI wires an existing API client, used by tests.
func NewAdapterWithAPI(api pricingiface.PricingAPI) *Adapter {
	return &Adapter{api: api}
}

// Provider returns the provider identifier.
func (a *Adapter) Provider() string {
	return domain.ProviderAWS
}

// Lookup resolves one on-demand price. Every failure mode collapses to
// domain.ErrPriceUnavailable after logging the underlying cause.
func (a *Adapter) Lookup(
	ctx context.Context,
	category domain.Category,
	specID, region string,
) (*domain.PriceQuotation, error) {
	logger := observability.FromContext(ctx)

	input, service, err := productsInput(category, specID, region)
	if err != nil {
		logger.Warn("aws pricing request not constructable", observability.Error(err))
		return nil, domain.ErrPriceUnavailable
	}

	output, err := a.api.GetProductsWithContext(ctx, input)
	if err != nil {
		logger.Warn("aws pricing api call failed",
			observability.String("service", service),
			observability.Error(err))
		return nil, domain.ErrPriceUnavailable
	}
	if len(output.PriceList) == 0 {
		logger.Warn("aws pricing returned no products",
			observability.String("service", service),
			observability.String("spec_id", specID),
			observability.String("region", region))
		return nil, domain.ErrPriceUnavailable
	}

	unitPrice, err := onDemandUSD(output.PriceList[0])
	if err != nil {
		logger.Warn("aws price list unparseable", observability.Error(err))
		return nil, domain.ErrPriceUnavailable
	}

	quote := &domain.PriceQuotation{
		Provider:   domain.ProviderAWS,
		Service:    service,
		Region:     region,
		InstanceID: specID,
		Currency:   "USD",
		Source:     domain.SourceLive,
		ResolvedAt: time.Now().UTC(),
	}
	if category == domain.CategoryStorage {
		quote.PerGBMonth = unitPrice
	} else {
		quote.Hourly = unitPrice
		quote.Monthly = unitPrice * domain.MonthlyHours
	}
	return quote, nil
}

// productsInput builds the GetProducts request for one category.
func productsInput(category domain.Category, specID, region string) (*pricing.GetProductsInput, string, error) {
	location, ok := locationForRegion[region]
	if !ok {
		return nil, "", fmt.Errorf("no price list location for region %q", region)
	}

	switch category {
	case domain.CategoryCompute:
		return &pricing.GetProductsInput{
			ServiceCode: aws.String("AmazonEC2"),
			MaxResults:  aws.Int64(1),
			Filters: []*pricing.Filter{
				termMatch("instanceType", specID),
				termMatch("location", location),
				termMatch("operatingSystem", "Linux"),
				termMatch("preInstalledSw", "NA"),
				termMatch("tenancy", "Shared"),
				termMatch("capacitystatus", "Used"),
			},
		}, "AmazonEC2", nil

	case domain.CategoryStorage:
		return &pricing.GetProductsInput{
			ServiceCode: aws.String("AmazonS3"),
			MaxResults:  aws.Int64(1),
			Filters: []*pricing.Filter{
				termMatch("location", location),
				termMatch("storageClass", specID),
				termMatch("productFamily", "Storage"),
			},
		}, "AmazonS3", nil

	case domain.CategoryDatabase:
		instance, engine := domain.SplitDatabaseSpecID(specID)
		apiEngine, ok := databaseEngines[engine]
		if !ok {
			return nil, "", fmt.Errorf("no rds engine mapping for %q", engine)
		}
		return &pricing.GetProductsInput{
			ServiceCode: aws.String("AmazonRDS"),
			MaxResults:  aws.Int64(1),
			Filters: []*pricing.Filter{
				termMatch("instanceType", instance),
				termMatch("databaseEngine", apiEngine),
				termMatch("location", location),
				termMatch("deploymentOption", "Single-AZ"),
			},
		}, "AmazonRDS", nil

	default:
		return nil, "", fmt.Errorf("no live pricing for category %q", category)
	}
}

func termMatch(field, value string) *pricing.Filter {
	return &pricing.Filter{
		Type:  aws.String(pricing.FilterTypeTermMatch),
		Field: aws.String(field),
		Value: aws.String(value),
	}
}

// onDemandUSD walks one price list document to the first on-demand USD price
// per unit: terms -> OnDemand -> <sku> -> priceDimensions -> <rate> ->
// pricePerUnit -> USD.
func onDemandUSD(priceList aws.JSONValue) (float64, error) {
	terms, ok := priceList["terms"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("price list has no terms")
	}
	onDemand, ok := terms["OnDemand"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("price list has no on-demand terms")
	}

	for _, term := range onDemand {
		termMap, ok := term.(map[string]interface{})
		if !ok {
			continue
		}
		dimensions, ok := termMap["priceDimensions"].(map[string]interface{})
		if !ok {
			continue
		}
		for _, dimension := range dimensions {
			dimensionMap, ok := dimension.(map[string]interface{})
			if !ok {
				continue
			}
			pricePerUnit, ok := dimensionMap["pricePerUnit"].(map[string]interface{})
			if !ok {
				continue
			}
			usd, ok := pricePerUnit["USD"].(string)
			if !ok {
				continue
			}
			price, err := strconv.ParseFloat(usd, 64)
			if err != nil {
				return 0, fmt.Errorf("parsing USD price %q: %w", usd, err)
			}
			return price, nil
		}
	}
	return 0, fmt.Errorf("price list has no USD price dimension")
}

//nolint:gochecknoglobals // Static region tables are shared read-only data
var (
	locationForRegion = map[string]string{
		"us-east-1":      "US East (N. Virginia)",
		"us-east-2":      "US East (Ohio)",
		"us-west-1":      "US West (N. California)",
		"us-west-2":      "US West (Oregon)",
		"eu-west-1":      "EU (Ireland)",
		"eu-central-1":   "EU (Frankfurt)",
		"ap-southeast-1": "Asia Pacific (Singapore)",
		"ap-south-1":     "Asia Pacific (Mumbai)",
	}

	databaseEngines = map[string]string{
		"mysql":      "MySQL",
		"postgresql": "PostgreSQL",
		"sqlserver":  "SQL Server",
		"oracle":     "Oracle",
	}
)
