package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	pkgconfig "github.com/San2021331091/Smart-Cart-Backend/pkg/config"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/database"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/middleware"
)

// Catalog backends.
const (
	BackendHTTP     = "http"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all configuration for the assistant service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort            int           `env:"ASSISTANT_HTTP_PORT" envDefault:"8090"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Catalog
	CatalogBackend    string        `env:"CATALOG_BACKEND" envDefault:"http"`
	CatalogURL        string        `env:"CATALOG_URL" envDefault:"http://localhost:8080"`
	CatalogTimeout    time.Duration `env:"CATALOG_TIMEOUT" envDefault:"5s"`
	CatalogMaxRetries int           `env:"CATALOG_MAX_RETRIES" envDefault:"2"`
	CatalogSeedFile   string        `env:"CATALOG_SEED_FILE"`

	// Circuit breaker around the HTTP catalog
	CBTimeout      time.Duration `env:"CB_TIMEOUT" envDefault:"15s"`
	CBFailureRatio float64       `env:"CB_FAILURE_RATIO" envDefault:"0.5"`
	CBMinRequests  uint32        `env:"CB_MIN_REQUESTS" envDefault:"5"`

	// PostgreSQL (CATALOG_BACKEND=postgres)
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"smartcart"`
	PostgresPass string `env:"POSTGRES_PASSWORD"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"smartcart"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns         int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	SlowQueryThreshold time.Duration `env:"LOG_SLOW_QUERY" envDefault:"500ms"`

	// Matching
	MatchThreshold       float64 `env:"MATCH_THRESHOLD" envDefault:"0.3"`
	SimilarResultsK      int     `env:"SIMILAR_RESULTS_K" envDefault:"5"`
	TrendingDefaultLimit int     `env:"TRENDING_DEFAULT_LIMIT" envDefault:"10"`

	// Kafka
	EventsEnabled bool     `env:"EVENTS_ENABLED" envDefault:"false"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Per-client rate limit on assistant endpoints; 0 disables it.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Proxies whose X-Forwarded-For is believed; empty trusts none.
	RateLimitTrustedProxies []string `env:"RATE_LIMIT_TRUSTED_PROXIES" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load assistant config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants. pkg/config.Load calls it.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	switch strings.ToLower(c.CatalogBackend) {
	case BackendHTTP:
		if _, err := url.ParseRequestURI(c.CatalogURL); err != nil {
			return fmt.Errorf("invalid CATALOG_URL %q: %w", c.CatalogURL, err)
		}
	case BackendPostgres:
		if c.PostgresHost == "" {
			return fmt.Errorf("POSTGRES_HOST is required")
		}
		if c.PostgresUser == "" {
			return fmt.Errorf("POSTGRES_USER is required")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("CATALOG_BACKEND must be one of http, postgres, memory, got %q", c.CatalogBackend)
	}
	c.CatalogBackend = strings.ToLower(c.CatalogBackend)

	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}
	if c.CatalogMaxRetries < 0 {
		return fmt.Errorf("CATALOG_MAX_RETRIES must not be negative")
	}
	if c.MatchThreshold < 0 || c.MatchThreshold >= 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be in [0, 1), got %v", c.MatchThreshold)
	}
	if c.SimilarResultsK < 1 {
		return fmt.Errorf("SIMILAR_RESULTS_K must be at least 1, got %d", c.SimilarResultsK)
	}
	if c.TrendingDefaultLimit < 1 || c.TrendingDefaultLimit > 100 {
		return fmt.Errorf("TRENDING_DEFAULT_LIMIT must be between 1 and 100, got %d", c.TrendingDefaultLimit)
	}
	if c.EventsEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when EVENTS_ENABLED is set")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", c.RateLimitRPS)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled, got %d", c.RateLimitBurst)
	}
	if _, err := middleware.ParseTrustedProxies(c.RateLimitTrustedProxies); err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_TRUSTED_PROXIES: %w", err)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}

// Postgres returns pool settings for the configured database.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	pg.MaxConns = c.DBMaxConns
	return pg
}
