// Package catalog reads products from the SmartCart catalog. Backends
// implement Source; the assistant talks to them through Client, which turns
// every backend failure into an empty result.
package catalog

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/logger"
)

// Source is a product catalog backend.
type Source interface {
	// All returns every product in the catalog.
	All(ctx context.Context) ([]domain.Product, error)

	// ByCategory returns the products whose category equals id.
	ByCategory(ctx context.Context, id string) ([]domain.Product, error)

	// ByTitle returns the products whose title equals title, ignoring case.
	ByTitle(ctx context.Context, title string) ([]domain.Product, error)

	// Latest returns up to n products, newest (highest id) first.
	Latest(ctx context.Context, n int) ([]domain.Product, error)
}

// Checker is implemented by sources that can report their own reachability.
type Checker interface {
	Check(ctx context.Context) error
}

var fetchFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_fetch_failures_total",
		Help: "Total number of catalog lookups that failed and degraded to an empty result.",
	},
	[]string{"backend", "operation"},
)

// Client wraps a Source. Failures are logged and counted, never returned:
// an unreachable catalog looks like an empty one.
type Client struct {
	source  Source
	backend string
	logger  *slog.Logger
}

// NewClient creates a client over source. backend labels failure metrics.
func NewClient(source Source, backend string, logger *slog.Logger) *Client {
	return &Client{source: source, backend: backend, logger: logger}
}

// Backend returns the configured backend name.
func (c *Client) Backend() string {
	return c.backend
}

// Check reports the reachability of the underlying source when it supports
// health checks.
func (c *Client) Check(ctx context.Context) error {
	if hc, ok := c.source.(Checker); ok {
		return hc.Check(ctx)
	}
	return nil
}

// All returns every product.
func (c *Client) All(ctx context.Context) []domain.Product {
	products, err := c.source.All(ctx)
	return c.degrade(ctx, "all", products, err)
}

// ByCategory returns the products in category id.
func (c *Client) ByCategory(ctx context.Context, id string) []domain.Product {
	products, err := c.source.ByCategory(ctx, id)
	return c.degrade(ctx, "by_category", products, err, slog.String("category", id))
}

// ByTitle returns the products titled title.
func (c *Client) ByTitle(ctx context.Context, title string) []domain.Product {
	products, err := c.source.ByTitle(ctx, title)
	return c.degrade(ctx, "by_title", products, err, slog.String("title", title))
}

// Latest returns up to n of the newest products.
func (c *Client) Latest(ctx context.Context, n int) []domain.Product {
	if n <= 0 {
		return []domain.Product{}
	}
	products, err := c.source.Latest(ctx, n)
	return c.degrade(ctx, "latest", products, err, slog.Int("limit", n))
}

func (c *Client) degrade(ctx context.Context, op string, products []domain.Product, err error, attrs ...any) []domain.Product {
	if err != nil {
		fetchFailures.WithLabelValues(c.backend, op).Inc()
		attrs = append(attrs,
			slog.String("backend", c.backend),
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
		logger.WithContext(ctx, c.logger).WarnContext(ctx, "catalog lookup failed", attrs...)
		return []domain.Product{}
	}
	if products == nil {
		return []domain.Product{}
	}
	return products
}
