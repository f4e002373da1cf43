package main

import (
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/costcompass/costcompass/internal/cache/memory"
	rediscache "github.com/costcompass/costcompass/internal/cache/redis"
	"github.com/costcompass/costcompass/internal/config"
	"github.com/costcompass/costcompass/internal/domain"
	"github.com/costcompass/costcompass/internal/httpserver"
	"github.com/costcompass/costcompass/internal/httpserver/middleware"
	"github.com/costcompass/costcompass/internal/observability"
	awspricing "github.com/costcompass/costcompass/internal/pricing/aws"
	azurepricing "github.com/costcompass/costcompass/internal/pricing/azure"
	gcppricing "github.com/costcompass/costcompass/internal/pricing/gcp"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *httpserver.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Quotation cache: Redis when configured, in-process otherwise.
	if err := container.Provide(func(cfg *config.RedisConfig) domain.PricingCache {
		if cfg.Addr == "" {
			return memory.New()
		}
		return rediscache.New(goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}))
	}); err != nil {
		log.Fatalf("Failed to provide pricing cache: %v", err)
	}

	// Pricing adapters. AWS needs credentials and is skipped without them;
	// Azure and GCP are always available when live pricing is on.
	if err := container.Provide(func(
		pricingCfg *config.PricingConfig,
		awsCfg *awspricing.Config,
		azureCfg *azurepricing.Config,
	) ([]domain.PricingAdapter, error) {
		if !pricingCfg.LiveEnabled {
			return nil, nil
		}

		adapters := []domain.PricingAdapter{
			azurepricing.NewAdapter(*azureCfg),
			gcppricing.NewAdapter(),
		}
		if awsCfg.Enabled() {
			awsAdapter, err := awspricing.NewAdapter(*awsCfg)
			if err != nil {
				return nil, err
			}
			adapters = append(adapters, awsAdapter)
		}
		return adapters, nil
	}); err != nil {
		log.Fatalf("Failed to provide pricing adapters: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(
		cfg *config.PricingConfig,
		cache domain.PricingCache,
		adapters []domain.PricingAdapter,
	) *domain.UnifiedPricingService {
		return domain.NewUnifiedPricingService(
			cache,
			adapters,
			time.Duration(cfg.LookupTimeoutSec)*time.Second,
			time.Duration(cfg.CacheTTLHours)*time.Hour,
		)
	}); err != nil {
		log.Fatalf("Failed to provide pricing service: %v", err)
	}
	if err := container.Provide(domain.NewStaticPricingTable); err != nil {
		log.Fatalf("Failed to provide static pricing table: %v", err)
	}
	if err := container.Provide(domain.NewCostCalculator); err != nil {
		log.Fatalf("Failed to provide cost calculator: %v", err)
	}
	if err := container.Provide(domain.NewCostCustomizationEngine); err != nil {
		log.Fatalf("Failed to provide customization engine: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(httpserver.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(httpserver.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
