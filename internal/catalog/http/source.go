// Package http reads the catalog from the SmartCart catalog service's REST API.
package http

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/httpclient"
)

// ServiceName identifies the catalog service in errors and metrics.
const ServiceName = "catalog"

// Source queries GET {baseURL}/products through a circuit breaker.
type Source struct {
	client  *httpclient.CircuitBreakerClient
	baseURL string
}

// NewSource creates a source for the catalog service at baseURL.
func NewSource(client *httpclient.CircuitBreakerClient, baseURL string) *Source {
	return &Source{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// All returns every product.
func (s *Source) All(ctx context.Context) ([]domain.Product, error) {
	return s.list(ctx, nil)
}

// ByCategory returns the products in category id.
func (s *Source) ByCategory(ctx context.Context, id string) ([]domain.Product, error) {
	return s.list(ctx, url.Values{"category": {id}})
}

// ByTitle returns the products whose title equals title, ignoring case.
func (s *Source) ByTitle(ctx context.Context, title string) ([]domain.Product, error) {
	return s.list(ctx, url.Values{"title": {title}})
}

// Latest returns up to n products ordered by id descending.
func (s *Source) Latest(ctx context.Context, n int) ([]domain.Product, error) {
	return s.list(ctx, url.Values{
		"sortBy": {"id"},
		"order":  {"DESC"},
		"limit":  {strconv.Itoa(n)},
	})
}

// Check fails while the circuit breaker is open.
func (s *Source) Check(ctx context.Context) error {
	return s.client.Healthy(ctx)
}

func (s *Source) list(ctx context.Context, params url.Values) ([]domain.Product, error) {
	endpoint := s.baseURL + "/products"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var products []domain.Product
	if err := s.client.GetJSON(ctx, endpoint, &products); err != nil {
		return nil, fmt.Errorf("list catalog products: %w", err)
	}
	return products, nil
}
