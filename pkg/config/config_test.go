package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port      int           `env:"TEST_CFG_PORT" envDefault:"8090"`
	Backend   string        `env:"TEST_CFG_BACKEND" envDefault:"http"`
	Timeout   time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"5s"`
	Threshold float64       `env:"TEST_CFG_THRESHOLD" envDefault:"0.3"`
	Brokers   []string      `env:"TEST_CFG_BROKERS" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, "http", cfg.Backend)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.InDelta(t, 0.3, cfg.Threshold, 1e-9)
	assert.Empty(t, cfg.Brokers)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_BACKEND", "postgres")
	t.Setenv("TEST_CFG_TIMEOUT", "250ms")
	t.Setenv("TEST_CFG_THRESHOLD", "0.45")
	t.Setenv("TEST_CFG_BROKERS", "k1:9092,k2:9092")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres", cfg.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.InDelta(t, 0.45, cfg.Threshold, 1e-9)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers)
}

func TestLoadWithPrefix(t *testing.T) {
	t.Setenv("SMARTCART_TEST_CFG_PORT", "7000")
	t.Setenv("TEST_CFG_PORT", "1")

	var cfg testConfig
	require.NoError(t, LoadWithPrefix(&cfg, "SMARTCART_"))
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

type requiredConfig struct {
	CatalogURL string `env:"TEST_CFG_CATALOG_URL,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

type validatedConfig struct {
	Limit int `env:"TEST_CFG_LIMIT" envDefault:"10"`
}

var errLimit = errors.New("limit must be positive")

func (c *validatedConfig) Validate() error {
	if c.Limit <= 0 {
		return errLimit
	}
	return nil
}

func TestLoad_RunsValidate(t *testing.T) {
	var ok validatedConfig
	require.NoError(t, Load(&ok))
	assert.Equal(t, 10, ok.Limit)

	t.Setenv("TEST_CFG_LIMIT", "0")
	var bad validatedConfig
	err := Load(&bad)

	require.Error(t, err)
	assert.ErrorIs(t, err, errLimit)
	assert.Contains(t, err.Error(), "validate config")
}
