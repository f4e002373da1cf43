package domain

import "strings"

// Instance size tiers used to bucket generic compute specs before mapping
// them to provider-specific identifiers.
const (
	tierSmall           = "small"
	tierMedium          = "medium"
	tierLarge           = "large"
	tierMemoryOptimized = "memory-optimized"
)

// instanceTier buckets a generic spec. Memory-optimized wins when either the
// declared class says so or the RAM/vCPU ratio exceeds 4.
func instanceTier(spec ComputeSpec) string {
	vcpus := spec.VCPUs
	if vcpus < 1 {
		vcpus = 1
	}

	if spec.InstanceClass == tierMemoryOptimized || spec.RAMGB/float64(vcpus) > 4 {
		return tierMemoryOptimized
	}
	if vcpus <= 2 && spec.RAMGB <= 4 {
		return tierSmall
	}
	if vcpus <= 4 && spec.RAMGB <= 16 {
		return tierMedium
	}
	return tierLarge
}

//nolint:gochecknoglobals // Static SKU tables are shared read-only data
var instanceIDs = map[string]map[string]string{
	ProviderAWS: {
		tierSmall:           "t3.small",
		tierMedium:          "t3.medium",
		tierLarge:           "t3.xlarge",
		tierMemoryOptimized: "r5.large",
	},
	ProviderAzure: {
		tierSmall:           "Standard_B2s",
		tierMedium:          "Standard_D2s_v3",
		tierLarge:           "Standard_D4s_v3",
		tierMemoryOptimized: "Standard_E2s_v3",
	},
	ProviderGCP: {
		tierSmall:           "e2-small",
		tierMedium:          "n1-standard-2",
		tierLarge:           "n1-standard-4",
		tierMemoryOptimized: "n1-highmem-2",
	},
	ProviderOracle: {
		tierSmall:           "VM.Standard.E4.Flex.1",
		tierMedium:          "VM.Standard.E4.Flex.2",
		tierLarge:           "VM.Standard.E4.Flex.4",
		tierMemoryOptimized: "VM.Standard.E4.Flex.2.32",
	},
}

// InstanceIDFor maps a generic compute spec to a provider instance identifier.
func InstanceIDFor(provider string, spec ComputeSpec) string {
	ids, ok := instanceIDs[provider]
	if !ok {
		return instanceIDs[ProviderAWS][instanceTier(spec)]
	}
	return ids[instanceTier(spec)]
}

//nolint:gochecknoglobals // Static region tables are shared read-only data
var (
	azureRegions = map[string]string{
		"us-east-1":      "eastus",
		"us-west-1":      "westus",
		"us-west-2":      "westus2",
		"eu-west-1":      "westeurope",
		"eu-central-1":   "germanywestcentral",
		"ap-southeast-1": "southeastasia",
		"ap-south-1":     "centralindia",
	}
	gcpRegions = map[string]string{
		"us-east-1":      "us-east1",
		"us-west-1":      "us-west1",
		"us-west-2":      "us-west2",
		"eu-west-1":      "europe-west1",
		"eu-central-1":   "europe-west3",
		"ap-southeast-1": "asia-southeast1",
		"ap-south-1":     "asia-south1",
	}
	oracleRegions = map[string]string{
		"us-east-1":      "us-ashburn-1",
		"us-west-1":      "us-sanjose-1",
		"us-west-2":      "us-phoenix-1",
		"eu-west-1":      "eu-amsterdam-1",
		"eu-central-1":   "eu-frankfurt-1",
		"ap-southeast-1": "ap-singapore-1",
		"ap-south-1":     "ap-mumbai-1",
	}
)

// RegionFor maps an AWS-style workload region to the provider's region code.
// Unknown regions fall back to each provider's default.
func RegionFor(provider, region string) string {
	switch provider {
	case ProviderAzure:
		if mapped, ok := azureRegions[region]; ok {
			return mapped
		}
		return "eastus"
	case ProviderGCP:
		if mapped, ok := gcpRegions[region]; ok {
			return mapped
		}
		return "us-central1"
	case ProviderOracle:
		if mapped, ok := oracleRegions[region]; ok {
			return mapped
		}
		return "us-ashburn-1"
	default:
		if region == "" {
			return "us-east-1"
		}
		return region
	}
}

// DatabaseSpecID maps a database requirement to a provider-specific spec
// identifier. The engine rides along after a colon so adapters that filter by
// engine (AWS) can recover it.
func DatabaseSpecID(provider string, spec DatabaseSpec) string {
	engine := spec.Engine
	if engine == "" {
		engine = "mysql"
	}

	var instance string
	switch provider {
	case ProviderAzure:
		instance = "S0"
	case ProviderGCP:
		instance = "db-n1-standard-1"
	case ProviderOracle:
		instance = "oracle-base-db"
	default:
		instance = "db.t3.medium"
	}
	return instance + ":" + engine
}

// SplitDatabaseSpecID recovers the instance identifier and engine from a
// DatabaseSpecID value.
func SplitDatabaseSpecID(specID string) (instance, engine string) {
	instance, engine, found := strings.Cut(specID, ":")
	if !found {
		return specID, "mysql"
	}
	return instance, engine
}

// StorageSpecID maps a generic storage class to the provider's SKU name used
// by its pricing API.
func StorageSpecID(provider, class string) string {
	switch provider {
	case ProviderAzure:
		switch class {
		case "ssd":
			return "Premium_LRS"
		case "archive":
			return "Standard_GRS"
		default:
			return "Standard_LRS"
		}
	case ProviderGCP:
		switch class {
		case "ssd":
			return "SSD"
		case "archive":
			return "ARCHIVE"
		default:
			return "STANDARD"
		}
	default:
		switch class {
		case "ssd":
			return "Intelligent-Tiering"
		case "archive":
			return "Glacier Deep Archive"
		default:
			return "Standard"
		}
	}
}
