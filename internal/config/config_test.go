package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.HTTPPort)
	assert.Equal(t, BackendHTTP, cfg.CatalogBackend)
	assert.Equal(t, "http://localhost:8080", cfg.CatalogURL)
	assert.Equal(t, 5*time.Second, cfg.CatalogTimeout)
	assert.InDelta(t, 0.3, cfg.MatchThreshold, 1e-9)
	assert.Equal(t, 5, cfg.SimilarResultsK)
	assert.Equal(t, 10, cfg.TrendingDefaultLimit)
	assert.False(t, cfg.EventsEnabled)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "Postgres")
	t.Setenv("MATCH_THRESHOLD", "0.45")
	t.Setenv("SIMILAR_RESULTS_K", "3")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("EVENTS_ENABLED", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.CatalogBackend)
	assert.InDelta(t, 0.45, cfg.MatchThreshold, 1e-9)
	assert.Equal(t, 3, cfg.SimilarResultsK)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"port", map[string]string{"ASSISTANT_HTTP_PORT": "0"}, "invalid HTTP port"},
		{"backend", map[string]string{"CATALOG_BACKEND": "redis"}, "CATALOG_BACKEND must be one of"},
		{"catalog url", map[string]string{"CATALOG_URL": "not a url"}, "invalid CATALOG_URL"},
		{"threshold", map[string]string{"MATCH_THRESHOLD": "1.5"}, "MATCH_THRESHOLD"},
		{"k", map[string]string{"SIMILAR_RESULTS_K": "0"}, "SIMILAR_RESULTS_K"},
		{"trending limit", map[string]string{"TRENDING_DEFAULT_LIMIT": "500"}, "TRENDING_DEFAULT_LIMIT"},
		{"sample rate", map[string]string{"OTEL_SAMPLE_RATE": "2"}, "OTEL_SAMPLE_RATE"},
		{"timeout", map[string]string{"CATALOG_TIMEOUT": "0s"}, "CATALOG_TIMEOUT"},
		{"retries", map[string]string{"CATALOG_MAX_RETRIES": "-1"}, "CATALOG_MAX_RETRIES"},
		{"rate limit", map[string]string{"RATE_LIMIT_RPS": "-1"}, "RATE_LIMIT_RPS"},
		{"rate limit burst", map[string]string{"RATE_LIMIT_BURST": "0"}, "RATE_LIMIT_BURST"},
		{"trusted proxies", map[string]string{"RATE_LIMIT_TRUSTED_PROXIES": "10.0.0.0/8,nope"}, "RATE_LIMIT_TRUSTED_PROXIES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MemoryBackendSkipsCatalogURL(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "memory")
	t.Setenv("CATALOG_URL", "not a url")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.CatalogBackend)
}

func TestConfig_Postgres(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PASSWORD", "s3cret")
	t.Setenv("DB_MAX_CONNS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	pg := cfg.Postgres()
	assert.Equal(t, "db.internal", pg.Host)
	assert.Equal(t, "s3cret", pg.Password)
	assert.Equal(t, int32(4), pg.MaxConns)
	assert.Equal(t, time.Hour, pg.MaxConnLifetime)
}
