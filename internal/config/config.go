package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/costcompass/costcompass/internal/pricing/aws"
	"github.com/costcompass/costcompass/internal/pricing/azure"
)

// Config represents the cost engine configuration.
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Pricing PricingConfig
	AWS     aws.Config
	Azure   azure.Config
	Redis   RedisConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// PricingConfig contains live pricing behavior settings.
type PricingConfig struct {
	LiveEnabled      bool `env:"PRICING_LIVE_ENABLED"       envDefault:"true"`
	LookupTimeoutSec int  `env:"PRICING_LOOKUP_TIMEOUT_SEC" envDefault:"5"`
	CacheTTLHours    int  `env:"PRICING_CACHE_TTL_HOURS"    envDefault:"24"`
}

// RedisConfig contains the optional shared quotation cache settings. An empty
// Addr selects the in-process cache.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// DepConfig is used for dependency injection with dig. The provider configs
// carry explicit field names because both embed as "Config".
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*PricingConfig
	*RedisConfig
	AWS   *aws.Config
	Azure *azure.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Pricing,
		&cfg.Redis,
		&cfg.AWS,
		&cfg.Azure,
	}
}
