package gcp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/costcompass/costcompass/internal/domain"
	"github.com/costcompass/costcompass/internal/pricing/gcp"
)

func TestLookupCompute(t *testing.T) {
	adapter := gcp.NewAdapter()

	quote, err := adapter.Lookup(context.Background(), domain.CategoryCompute, "n1-standard-2", "us-central1")
	require.NoError(t, err)

	require.Equal(t, domain.ProviderGCP, quote.Provider)
	require.Equal(t, domain.SourceLive, quote.Source)
	require.Equal(t, "Compute Engine", quote.Service)
	require.InDelta(t, 0.0950, quote.Hourly, 0.0001)
	require.InDelta(t, 0.0950*730, quote.Monthly, 0.001)
}

func TestLookupComputeRegionFactor(t *testing.T) {
	adapter := gcp.NewAdapter()

	baseline, err := adapter.Lookup(context.Background(), domain.CategoryCompute, "e2-small", "us-central1")
	require.NoError(t, err)

	frankfurt, err := adapter.Lookup(context.Background(), domain.CategoryCompute, "e2-small", "europe-west3")
	require.NoError(t, err)

	require.InDelta(t, baseline.Hourly*1.10, frankfurt.Hourly, 0.0001)
}

func TestLookupStorage(t *testing.T) {
	adapter := gcp.NewAdapter()

	quote, err := adapter.Lookup(context.Background(), domain.CategoryStorage, "ARCHIVE", "us-central1")
	require.NoError(t, err)
	require.Equal(t, "Cloud Storage", quote.Service)
	require.InDelta(t, 0.0025, quote.PerGBMonth, 0.0001)
}

func TestLookupDatabase(t *testing.T) {
	adapter := gcp.NewAdapter()

	mysql, err := adapter.Lookup(context.Background(), domain.CategoryDatabase, "db-n1-standard-1:mysql", "us-central1")
	require.NoError(t, err)
	require.Equal(t, "Cloud SQL", mysql.Service)
	require.InDelta(t, 0.0965, mysql.Hourly, 0.0001)

	// SQL Server carries a license uplift.
	sqlserver, err := adapter.Lookup(context.Background(), domain.CategoryDatabase, "db-n1-standard-1:sqlserver", "us-central1")
	require.NoError(t, err)
	require.InDelta(t, 0.0965*2.2, sqlserver.Hourly, 0.0001)
}

func TestLookupUnavailable(t *testing.T) {
	adapter := gcp.NewAdapter()
	ctx := context.Background()

	_, err := adapter.Lookup(ctx, domain.CategoryCompute, "tpu-v5", "us-central1")
	require.ErrorIs(t, err, domain.ErrPriceUnavailable)

	_, err = adapter.Lookup(ctx, domain.CategoryStorage, "TAPE", "us-central1")
	require.ErrorIs(t, err, domain.ErrPriceUnavailable)

	// Cloud SQL does not offer Oracle.
	_, err = adapter.Lookup(ctx, domain.CategoryDatabase, "db-n1-standard-1:oracle", "us-central1")
	require.ErrorIs(t, err, domain.ErrPriceUnavailable)

	_, err = adapter.Lookup(ctx, domain.CategoryNetworking, "anything", "us-central1")
	require.ErrorIs(t, err, domain.ErrPriceUnavailable)
}

func TestLookupUnknownRegionPricesAtBaseline(t *testing.T) {
	adapter := gcp.NewAdapter()

	quote, err := adapter.Lookup(context.Background(), domain.CategoryCompute, "e2-small", "mars-north1")
	require.NoError(t, err)
	require.InDelta(t, 0.01675, quote.Hourly, 0.0001)
}
