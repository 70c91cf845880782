// Package memory serves the catalog from a product list held in memory,
// typically seeded from a JSON file.
package memory

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
)

// Source is an in-memory catalog. Thread-safe via sync.RWMutex.
type Source struct {
	mu       sync.RWMutex
	products []domain.Product
}

// New creates a source holding a copy of products, in the given order.
func New(products []domain.Product) *Source {
	return &Source{products: slices.Clone(products)}
}

// LoadFile reads a JSON array of products from path.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed %s: %w", path, err)
	}
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog seed %s: %w", path, err)
	}
	return New(products), nil
}

// Replace swaps the whole catalog.
func (s *Source) Replace(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = slices.Clone(products)
}

// All returns every product.
func (s *Source) All(context.Context) ([]domain.Product, error) {
	return s.filter(func(domain.Product) bool { return true }), nil
}

// ByCategory returns the products whose category equals id.
func (s *Source) ByCategory(_ context.Context, id string) ([]domain.Product, error) {
	return s.filter(func(p domain.Product) bool { return p.Category == id }), nil
}

// ByTitle returns the products whose title equals title, ignoring case.
func (s *Source) ByTitle(_ context.Context, title string) ([]domain.Product, error) {
	return s.filter(func(p domain.Product) bool { return strings.EqualFold(p.Title, title) }), nil
}

// Latest returns up to n products with the highest ids.
func (s *Source) Latest(_ context.Context, n int) ([]domain.Product, error) {
	out := s.filter(func(domain.Product) bool { return true })
	slices.SortStableFunc(out, func(a, b domain.Product) int {
		return compareIDs(b.ID, a.ID)
	})
	if n < len(out) {
		out = out[:max(n, 0)]
	}
	return out, nil
}

func (s *Source) filter(keep func(domain.Product) bool) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// compareIDs orders numeric ids numerically and everything else lexically.
func compareIDs(a, b string) int {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(ai, bi)
	}
	return strings.Compare(a, b)
}
