package domain

import "time"

// Provider identifiers for the four clouds every calculation covers.
const (
	ProviderAWS    = "aws"
	ProviderAzure  = "azure"
	ProviderGCP    = "gcp"
	ProviderOracle = "oracle"
)

// ProviderOrder is the fixed comparison order. Ties in the multi-cloud
// optimizer are broken by this order (first seen wins).
//
//nolint:gochecknoglobals // Fixed provider set is shared read-only data
var ProviderOrder = []string{ProviderAWS, ProviderAzure, ProviderGCP, ProviderOracle}

// Category is one of the four cost dimensions tracked per provider.
type Category string

const (
	CategoryCompute    Category = "compute"
	CategoryStorage    Category = "storage"
	CategoryDatabase   Category = "database"
	CategoryNetworking Category = "networking"
)

// Categories lists the cost dimensions in reporting order.
//
//nolint:gochecknoglobals // Fixed category set is shared read-only data
var Categories = []Category{CategoryCompute, CategoryStorage, CategoryDatabase, CategoryNetworking}

// MonthlyHours is the average number of hours in a month (365 days * 24 / 12).
const MonthlyHours = 730.0

// ComputeSpec describes one fleet of identical instances.
type ComputeSpec struct {
	VCPUs         int     `json:"vcpus"`
	RAMGB         float64 `json:"ramGB"`
	InstanceClass string  `json:"instanceClass"` // "standard" or "memory-optimized"
	Region        string  `json:"region"`
	InstanceCount int     `json:"instanceCount"`
}

// StorageSpec describes the object storage requirement.
type StorageSpec struct {
	SizeGB float64 `json:"sizeGB"`
	Class  string  `json:"class"` // "standard", "ssd" or "archive"
}

// DatabaseSpec describes the managed database requirement.
type DatabaseSpec struct {
	SizeGB float64 `json:"sizeGB"`
	Engine string  `json:"engine"` // "mysql", "postgresql", "sqlserver" or "oracle"
}

// NetworkingSpec describes bandwidth and load balancing requirements.
type NetworkingSpec struct {
	BandwidthGB      float64 `json:"bandwidthGB"`
	LoadBalancerTier string  `json:"loadBalancerTier"` // "none", "application" or "network"
}

// InfrastructureRequirements is a provider-neutral description of the
// workload to be priced. Compute is a non-empty ordered sequence; each spec
// contributes instanceCount times its unit cost.
type InfrastructureRequirements struct {
	Compute    []ComputeSpec  `json:"compute"`
	Storage    StorageSpec    `json:"storage"`
	Database   DatabaseSpec   `json:"database"`
	Networking NetworkingSpec `json:"networking"`
}

// Data source tags for quotations and breakdowns.
const (
	SourceLive   = "live"
	SourceStatic = "static"
	SourceHybrid = "hybrid"
)

// PriceQuotation is a resolved price for one provider/category/region/spec.
type PriceQuotation struct {
	Provider   string    `json:"provider"`
	Service    string    `json:"service"`
	Region     string    `json:"region"`
	InstanceID string    `json:"instanceId,omitempty"`
	Hourly     float64   `json:"hourly,omitempty"`
	Monthly    float64   `json:"monthlyEquivalent,omitempty"`
	PerGBMonth float64   `json:"perGBMonth,omitempty"`
	Currency   string    `json:"currency"`
	Source     string    `json:"source"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

// MonthlyEquivalent returns the monthly figure, deriving it from the hourly
// rate when only the hourly rate is known.
func (q *PriceQuotation) MonthlyEquivalent() float64 {
	if q.Monthly > 0 {
		return q.Monthly
	}
	return q.Hourly * MonthlyHours
}

// CloudProviderCostBreakdown holds the per-category monthly costs for one
// provider. Total is the sum of the four categories, each rounded to cents.
type CloudProviderCostBreakdown struct {
	Name       string  `json:"name"`
	Compute    float64 `json:"compute"`
	Storage    float64 `json:"storage"`
	Database   float64 `json:"database"`
	Networking float64 `json:"networking"`
	Total      float64 `json:"total"`
	Source     string  `json:"source"` // "live", "static" or "hybrid"
}

// CategoryCost returns the cost of one category from the breakdown.
func (b CloudProviderCostBreakdown) CategoryCost(category Category) float64 {
	switch category {
	case CategoryCompute:
		return b.Compute
	case CategoryStorage:
		return b.Storage
	case CategoryDatabase:
		return b.Database
	case CategoryNetworking:
		return b.Networking
	default:
		return 0
	}
}

// MultiCloudEstimate is the hypothetical best-of-breed bundle built by picking
// the cheapest provider per category. It is an optimistic lower bound: no
// inter-provider egress or operational overhead is modeled, so it should be
// read as an illustrative minimum rather than a deployable plan.
type MultiCloudEstimate struct {
	Cost      float64             `json:"cost"`
	Breakdown map[Category]string `json:"breakdown"`
}

// Recommendations carries the templated advice strings for a calculation.
type Recommendations struct {
	SingleCloud string `json:"singleCloud"`
	MultiCloud  string `json:"multiCloud"`
}

// CostCalculationResult is the full output of one cost comparison.
type CostCalculationResult struct {
	Providers        []CloudProviderCostBreakdown `json:"providers"`
	Cheapest         CloudProviderCostBreakdown   `json:"cheapest"`
	MostExpensive    CloudProviderCostBreakdown   `json:"mostExpensive"`
	PotentialSavings float64                      `json:"potentialSavings"`
	MultiCloudOption MultiCloudEstimate           `json:"multiCloudOption"`
	Recommendations  Recommendations              `json:"recommendations"`
}

// Environment types recognized by the customization engine.
const (
	EnvProduction       = "production"
	EnvStaging          = "staging"
	EnvDevelopment      = "development"
	EnvTesting          = "testing"
	EnvQA               = "qa"
	EnvDemo             = "demo"
	EnvDisasterRecovery = "disaster-recovery"
)

// EnvironmentConfig identifies the environment a workload runs in.
type EnvironmentConfig struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// RunningSchedule describes when a workload actually runs. HoursPerMonth, if
// set, takes precedence over the daily/weekly figures.
type RunningSchedule struct {
	HoursPerDay   float64 `json:"hoursPerDay"`
	DaysPerWeek   float64 `json:"daysPerWeek"`
	HoursPerMonth float64 `json:"hoursPerMonth,omitempty"`
	Schedule      string  `json:"schedule,omitempty"` // e.g. "9am-5pm Mon-Fri"
}

// Pricing model types.
const (
	ModelOnDemand    = "on-demand"
	ModelReserved1yr = "reserved-1yr"
	ModelReserved3yr = "reserved-3yr"
	ModelSavingsPlan = "savings-plan"
	ModelSpot        = "spot"
)

// Commitment options for reserved pricing models.
const (
	CommitmentNoUpfront      = "no-upfront"
	CommitmentPartialUpfront = "partial-upfront"
	CommitmentAllUpfront     = "all-upfront"
)

// Expected runtime profiles used when recommending a pricing model.
const (
	RuntimeContinuous = "continuous"
	RuntimeScheduled  = "scheduled"
	RuntimeSporadic   = "sporadic"
)

// PricingModel selects a commitment/pricing scheme.
type PricingModel struct {
	Type       string `json:"type"`
	Commitment string `json:"commitment,omitempty"`
	// ComputeSavingsPlanPct is the percentage of compute spend covered by a
	// savings plan (0-100). Defaults to 100 when unset.
	ComputeSavingsPlanPct float64 `json:"computeSavingsPlanPct,omitempty"`
}

// CostCustomization bundles the inputs for re-pricing a baseline cost.
type CostCustomization struct {
	Environment     EnvironmentConfig `json:"environment"`
	RunningSchedule RunningSchedule   `json:"runningSchedule"`
	PricingModel    PricingModel      `json:"pricingModel"`
}

// DiscountBreakdown itemizes the two discount stages.
type DiscountBreakdown struct {
	RunningHoursDiscount float64 `json:"runningHoursDiscount"`
	PricingModelDiscount float64 `json:"pricingModelDiscount"`
	TotalDiscount        float64 `json:"totalDiscount"`
}

// UsageDetails reports the derived schedule figures.
type UsageDetails struct {
	HoursPerMonth         float64 `json:"hoursPerMonth"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	EffectiveHourlyRate   float64 `json:"effectiveHourlyRate"`
}

// CustomizedCostResult is the output of the cost customization engine.
type CustomizedCostResult struct {
	BaseCost          float64           `json:"baseCost"`
	CustomizedCost    float64           `json:"customizedCost"`
	Savings           float64           `json:"savings"`
	SavingsPercentage float64           `json:"savingsPercentage"`
	Breakdown         DiscountBreakdown `json:"breakdown"`
	Details           UsageDetails      `json:"details"`
	Recommendations   []string          `json:"recommendations,omitempty"`
}

// EnvironmentComparison pairs an environment name with its customized result.
type EnvironmentComparison struct {
	Environment string                `json:"environment"`
	Result      *CustomizedCostResult `json:"result"`
}
