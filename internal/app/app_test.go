package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/San2021331091/Smart-Cart-Backend/internal/config"
)

func memoryConfig(t *testing.T, seed string) *config.Config {
	t.Helper()
	t.Setenv("CATALOG_BACKEND", "memory")
	t.Setenv("ASSISTANT_HTTP_PORT", "18090")
	if seed != "" {
		path := filepath.Join(t.TempDir(), "products.json")
		require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))
		t.Setenv("CATALOG_SEED_FILE", path)
	}
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewApp_MemoryBackend(t *testing.T) {
	cfg := memoryConfig(t, `[{"id":1,"title":"Red Shoe","category":"mens-shoes","price":"40","stock":"2"}]`)

	a, err := NewApp(cfg, discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"query":"is the red shoe in stock?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Answer string `json:"answer"`
			Yes    bool   `json:"yes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Yes)
	assert.Equal(t, "Yes, 'Red Shoe' is in stock with 2 items.", resp.Data.Answer)

	ready := httptest.NewRecorder()
	a.Handler().ServeHTTP(ready, httptest.NewRequest(http.MethodGet, "/health/ready", http.NoBody))
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), "catalog")
}

func TestNewApp_MemoryBackendWithoutSeed(t *testing.T) {
	cfg := memoryConfig(t, "")

	a, err := NewApp(cfg, discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/notifications", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestNewApp_BadSeedFile(t *testing.T) {
	cfg := memoryConfig(t, `{not json`)

	_, err := NewApp(cfg, discard())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load memory catalog")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := memoryConfig(t, "")
	cfg.HTTPPort = 0

	a, err := NewApp(cfg, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewApp_RateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "0.001")
	t.Setenv("RATE_LIMIT_BURST", "1")
	cfg := memoryConfig(t, "")

	a, err := NewApp(cfg, discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	codes := make([]int, 0, 2)
	for _, spoofed := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/trending", nil)
		req.Header.Set("X-Forwarded-For", spoofed)
		w := httptest.NewRecorder()
		a.Handler().ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewApp_InvalidTrustedProxies(t *testing.T) {
	cfg := memoryConfig(t, "")
	cfg.RateLimitTrustedProxies = []string{"nope"}

	_, err := NewApp(cfg, discard())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "trusted proxy")
}
