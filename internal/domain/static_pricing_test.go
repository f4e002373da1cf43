package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/costcompass/costcompass/internal/domain"
)

func TestStaticComputeMonthly(t *testing.T) {
	table := domain.NewStaticPricingTable()

	tests := []struct {
		name       string
		provider   string
		spec       domain.ComputeSpec
		multiplier float64
		want       float64
	}{
		{
			name:       "aws standard small",
			provider:   domain.ProviderAWS,
			spec:       domain.ComputeSpec{VCPUs: 2, RAMGB: 4, InstanceClass: "standard"},
			multiplier: 1.0,
			want:       (2*0.0255 + 4*0.0035) * 730,
		},
		{
			name:       "aws memory optimized uses discounted rates",
			provider:   domain.ProviderAWS,
			spec:       domain.ComputeSpec{VCPUs: 2, RAMGB: 16, InstanceClass: "memory-optimized"},
			multiplier: 1.0,
			want:       (2*0.0230 + 16*0.0031) * 730,
		},
		{
			name:       "oracle is cheapest per vcpu",
			provider:   domain.ProviderOracle,
			spec:       domain.ComputeSpec{VCPUs: 4, RAMGB: 8, InstanceClass: "standard"},
			multiplier: 1.0,
			want:       (4*0.0190 + 8*0.0026) * 730,
		},
		{
			name:       "region multiplier scales the price",
			provider:   domain.ProviderAWS,
			spec:       domain.ComputeSpec{VCPUs: 2, RAMGB: 4, InstanceClass: "standard"},
			multiplier: 1.08,
			want:       (2*0.0255 + 4*0.0035) * 730 * 1.08,
		},
		{
			name:       "unknown class falls back to standard",
			provider:   domain.ProviderAWS,
			spec:       domain.ComputeSpec{VCPUs: 2, RAMGB: 4, InstanceClass: "gpu"},
			multiplier: 1.0,
			want:       (2*0.0255 + 4*0.0035) * 730,
		},
		{
			name:       "unknown provider falls back to aws rates",
			provider:   "alibaba",
			spec:       domain.ComputeSpec{VCPUs: 2, RAMGB: 4, InstanceClass: "standard"},
			multiplier: 1.0,
			want:       (2*0.0255 + 4*0.0035) * 730,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.ComputeMonthly(tt.provider, tt.spec, tt.multiplier)
			require.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestStaticStorageMonthly(t *testing.T) {
	table := domain.NewStaticPricingTable()

	require.InDelta(t, 100*0.023, table.StorageMonthly(domain.ProviderAWS, domain.StorageSpec{SizeGB: 100, Class: "standard"}), 0.0001)
	require.InDelta(t, 100*0.080, table.StorageMonthly(domain.ProviderAWS, domain.StorageSpec{SizeGB: 100, Class: "ssd"}), 0.0001)
	require.InDelta(t, 1000*0.0025, table.StorageMonthly(domain.ProviderGCP, domain.StorageSpec{SizeGB: 1000, Class: "archive"}), 0.0001)

	// Unknown class prices as standard.
	require.InDelta(t, 100*0.0208, table.StorageMonthly(domain.ProviderAzure, domain.StorageSpec{SizeGB: 100, Class: "tape"}), 0.0001)
}

func TestStaticDatabaseMonthly(t *testing.T) {
	table := domain.NewStaticPricingTable()

	require.InDelta(t, 50*0.117*1.05,
		table.DatabaseMonthly(domain.ProviderGCP, domain.DatabaseSpec{SizeGB: 50, Engine: "postgresql"}, 1.05), 0.0001)

	// Oracle engine on Oracle cloud carries the home-field rate.
	require.InDelta(t, 100*0.190,
		table.DatabaseMonthly(domain.ProviderOracle, domain.DatabaseSpec{SizeGB: 100, Engine: "oracle"}, 1.0), 0.0001)

	// Unknown engine prices as mysql.
	require.InDelta(t, 50*0.115,
		table.DatabaseMonthly(domain.ProviderAWS, domain.DatabaseSpec{SizeGB: 50, Engine: "mariadb"}, 1.0), 0.0001)
}

func TestStaticNetworkingMonthly(t *testing.T) {
	table := domain.NewStaticPricingTable()

	require.InDelta(t, 100*0.087+23.25,
		table.NetworkingMonthly(domain.ProviderAzure, domain.NetworkingSpec{BandwidthGB: 100, LoadBalancerTier: "application"}), 0.0001)
	require.InDelta(t, 500*0.090+16.43,
		table.NetworkingMonthly(domain.ProviderAWS, domain.NetworkingSpec{BandwidthGB: 500, LoadBalancerTier: "network"}), 0.0001)
	require.InDelta(t, 100*0.120,
		table.NetworkingMonthly(domain.ProviderGCP, domain.NetworkingSpec{BandwidthGB: 100, LoadBalancerTier: "none"}), 0.0001)
}

func TestRegionMultiplier(t *testing.T) {
	table := domain.NewStaticPricingTable()

	require.InDelta(t, 1.00, table.RegionMultiplier("us-east-1"), 0.0001)
	require.InDelta(t, 1.12, table.RegionMultiplier("ap-southeast-1"), 0.0001)
	require.InDelta(t, 0.98, table.RegionMultiplier("ap-south-1"), 0.0001)
	require.InDelta(t, 1.00, table.RegionMultiplier("mars-north-1"), 0.0001)
}
