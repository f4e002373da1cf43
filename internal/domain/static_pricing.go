package domain

// computeRates holds per-hour unit rates for one instance class.
type computeRates struct {
	VCPUHour float64 // USD per vCPU-hour
	RAMHour  float64 // USD per GB-hour
}

// networkingRates holds bandwidth and load-balancer rates for one provider.
type networkingRates struct {
	BandwidthPerGB float64            // USD per GB transferred
	LoadBalancer   map[string]float64 // tier -> flat USD per month
}

// StaticPricingTable is the fixed fallback rate card. It is always available,
// never fails, and guarantees a price is computable for any requirement.
// Rates approximate published on-demand list prices, USD.
type StaticPricingTable struct {
	compute    map[string]map[string]computeRates // provider -> class -> rates
	storage    map[string]map[string]float64      // provider -> class -> USD per GB-month
	database   map[string]map[string]float64      // provider -> engine -> USD per GB-month
	networking map[string]networkingRates
	regions    map[string]float64 // workload region -> cost multiplier
}

// NewStaticPricingTable builds the rate card.
func NewStaticPricingTable() *StaticPricingTable {
	return &StaticPricingTable{
		compute: map[string]map[string]computeRates{
			ProviderAWS: {
				"standard":         {VCPUHour: 0.0255, RAMHour: 0.0035},
				tierMemoryOptimized: {VCPUHour: 0.0230, RAMHour: 0.0031},
			},
			ProviderAzure: {
				"standard":         {VCPUHour: 0.0270, RAMHour: 0.0037},
				tierMemoryOptimized: {VCPUHour: 0.0242, RAMHour: 0.0033},
			},
			ProviderGCP: {
				"standard":         {VCPUHour: 0.0240, RAMHour: 0.0032},
				tierMemoryOptimized: {VCPUHour: 0.0216, RAMHour: 0.0029},
			},
			ProviderOracle: {
				"standard":         {VCPUHour: 0.0190, RAMHour: 0.0026},
				tierMemoryOptimized: {VCPUHour: 0.0172, RAMHour: 0.0023},
			},
		},
		storage: map[string]map[string]float64{
			ProviderAWS:    {"standard": 0.023, "ssd": 0.080, "archive": 0.0040},
			ProviderAzure:  {"standard": 0.0208, "ssd": 0.075, "archive": 0.0036},
			ProviderGCP:    {"standard": 0.020, "ssd": 0.085, "archive": 0.0025},
			ProviderOracle: {"standard": 0.0255, "ssd": 0.0425, "archive": 0.0026},
		},
		database: map[string]map[string]float64{
			ProviderAWS:    {"mysql": 0.115, "postgresql": 0.121, "sqlserver": 0.289, "oracle": 0.351},
			ProviderAzure:  {"mysql": 0.122, "postgresql": 0.118, "sqlserver": 0.253, "oracle": 0.340},
			ProviderGCP:    {"mysql": 0.109, "postgresql": 0.117, "sqlserver": 0.302, "oracle": 0.362},
			ProviderOracle: {"mysql": 0.098, "postgresql": 0.104, "sqlserver": 0.245, "oracle": 0.190},
		},
		networking: map[string]networkingRates{
			ProviderAWS: {
				BandwidthPerGB: 0.090,
				LoadBalancer:   map[string]float64{"none": 0, "application": 22.27, "network": 16.43},
			},
			ProviderAzure: {
				BandwidthPerGB: 0.087,
				LoadBalancer:   map[string]float64{"none": 0, "application": 23.25, "network": 21.90},
			},
			ProviderGCP: {
				BandwidthPerGB: 0.120,
				LoadBalancer:   map[string]float64{"none": 0, "application": 18.26, "network": 18.26},
			},
			ProviderOracle: {
				BandwidthPerGB: 0.0085,
				LoadBalancer:   map[string]float64{"none": 0, "application": 19.00, "network": 14.60},
			},
		},
		regions: map[string]float64{
			"us-east-1":      1.00,
			"us-west-1":      1.08,
			"us-west-2":      1.02,
			"eu-west-1":      1.05,
			"eu-central-1":   1.09,
			"ap-southeast-1": 1.12,
			"ap-south-1":     0.98,
		},
	}
}

// RegionMultiplier returns the cost multiplier for a workload region.
// Unknown regions price at the baseline.
func (t *StaticPricingTable) RegionMultiplier(region string) float64 {
	if m, ok := t.regions[region]; ok {
		return m
	}
	return 1.0
}

// ComputeMonthly prices one instance of the given spec for a month:
// vcpus*vcpuRate*730 + ramGB*ramRate*730, scaled by the region multiplier.
// The caller multiplies by the instance count.
func (t *StaticPricingTable) ComputeMonthly(provider string, spec ComputeSpec, regionMultiplier float64) float64 {
	classes, ok := t.compute[provider]
	if !ok {
		classes = t.compute[ProviderAWS]
	}
	rates, ok := classes[spec.InstanceClass]
	if !ok {
		rates = classes["standard"]
	}

	vcpuCost := float64(spec.VCPUs) * rates.VCPUHour * MonthlyHours
	ramCost := spec.RAMGB * rates.RAMHour * MonthlyHours
	return (vcpuCost + ramCost) * regionMultiplier
}

// StorageMonthly prices the storage requirement per month.
func (t *StaticPricingTable) StorageMonthly(provider string, spec StorageSpec) float64 {
	classes, ok := t.storage[provider]
	if !ok {
		classes = t.storage[ProviderAWS]
	}
	rate, ok := classes[spec.Class]
	if !ok {
		rate = classes["standard"]
	}
	return spec.SizeGB * rate
}

// DatabaseMonthly prices the database requirement per month, scaled by the
// region multiplier.
func (t *StaticPricingTable) DatabaseMonthly(provider string, spec DatabaseSpec, regionMultiplier float64) float64 {
	engines, ok := t.database[provider]
	if !ok {
		engines = t.database[ProviderAWS]
	}
	rate, ok := engines[spec.Engine]
	if !ok {
		rate = engines["mysql"]
	}
	return spec.SizeGB * rate * regionMultiplier
}

// NetworkingMonthly prices bandwidth plus the load-balancer tier per month.
// Networking has no live pricing source; this table is authoritative.
func (t *StaticPricingTable) NetworkingMonthly(provider string, spec NetworkingSpec) float64 {
	rates, ok := t.networking[provider]
	if !ok {
		rates = t.networking[ProviderAWS]
	}
	return spec.BandwidthGB*rates.BandwidthPerGB + rates.LoadBalancer[spec.LoadBalancerTier]
}
