package gcp

// Published list prices, refreshed manually from the GCP pricing pages.
// Rates are us-central1 baseline; other regions apply a multiplier.

//nolint:gochecknoglobals // Static rate tables are shared read-only data
var (
	machineHourly = map[string]float64{
		"e2-small":      0.01675,
		"e2-medium":     0.03351,
		"n1-standard-2": 0.0950,
		"n1-standard-4": 0.1900,
		"n1-highmem-2":  0.1184,
		"n1-highmem-4":  0.2368,
	}

	databaseTierHourly = map[string]float64{
		"db-f1-micro":      0.0150,
		"db-g1-small":      0.0500,
		"db-n1-standard-1": 0.0965,
		"db-n1-standard-2": 0.1930,
	}

	// License uplift per database engine. Engines Cloud SQL does not offer
	// are absent and resolve as unavailable.
	databaseEngineFactor = map[string]float64{
		"mysql":      1.0,
		"postgresql": 1.0,
		"sqlserver":  2.2,
	}

	storagePerGBMonth = map[string]float64{
		"STANDARD": 0.020,
		"NEARLINE": 0.010,
		"COLDLINE": 0.004,
		"ARCHIVE":  0.0025,
		"SSD":      0.085,
	}

	regionFactor = map[string]float64{
		"us-central1":     1.00,
		"us-east1":        1.00,
		"us-west1":        1.00,
		"us-west2":        1.06,
		"europe-west1":    1.08,
		"europe-west3":    1.10,
		"asia-southeast1": 1.12,
		"asia-south1":     0.98,
	}
)

func regionMultiplier(region string) float64 {
	if factor, ok := regionFactor[region]; ok {
		return factor
	}
	return 1.0
}
