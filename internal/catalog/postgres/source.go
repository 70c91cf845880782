// Package postgres reads the catalog directly from the products table.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/database"
)

// Every column is coerced in SQL so rows scan into plain Go types regardless
// of how the catalog schema declares them.
const selectProducts = `
	SELECT id::text,
	       COALESCE(title, ''),
	       COALESCE(description, ''),
	       COALESCE(category, ''),
	       COALESCE(price, 0)::float8,
	       COALESCE(discountpercentage, 0)::float8,
	       COALESCE(rating, 0)::float8,
	       COALESCE(stock, 0)::int,
	       COALESCE(tags::text, '[]'),
	       COALESCE(brand, ''),
	       COALESCE(sku, ''),
	       COALESCE(availabilitystatus, ''),
	       COALESCE(thumbnail, ''),
	       COALESCE(images::text, '[]')
	FROM products`

// Source implements catalog.Source over PostgreSQL.
type Source struct {
	db     database.DBTX
	tracer database.QueryTracer
}

// NewSource creates a source reading from db.
func NewSource(db database.DBTX, tracer database.QueryTracer) *Source {
	return &Source{db: db, tracer: tracer}
}

// All returns every product ordered by id.
func (s *Source) All(ctx context.Context) ([]domain.Product, error) {
	return s.query(ctx, "ProductsAll", selectProducts+` ORDER BY id`)
}

// ByCategory returns the products in category id.
func (s *Source) ByCategory(ctx context.Context, id string) ([]domain.Product, error) {
	return s.query(ctx, "ProductsByCategory", selectProducts+` WHERE category = $1 ORDER BY id`, id)
}

// ByTitle returns the products whose title equals title, ignoring case.
func (s *Source) ByTitle(ctx context.Context, title string) ([]domain.Product, error) {
	return s.query(ctx, "ProductsByTitle", selectProducts+` WHERE LOWER(title) = LOWER($1) ORDER BY id`, title)
}

// Latest returns up to n products, highest id first.
func (s *Source) Latest(ctx context.Context, n int) ([]domain.Product, error) {
	return s.query(ctx, "ProductsLatest", selectProducts+` ORDER BY id DESC LIMIT $1`, n)
}

// Check pings the database.
func (s *Source) Check(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Source) query(ctx context.Context, op, sql string, args ...any) (products []domain.Product, err error) {
	ctx, end := s.tracer.Trace(ctx, op, sql)
	defer func() { end(err) }()

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products = make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func scanProduct(rows pgx.Rows) (domain.Product, error) {
	var (
		p            domain.Product
		tags, images string
	)
	err := rows.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.DiscountPercentage,
		&p.Rating,
		&p.Stock,
		&tags,
		&p.Brand,
		&p.SKU,
		&p.AvailabilityStatus,
		&p.Thumbnail,
		&images,
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("scan product: %w", err)
	}

	p.Tags = decodeList(tags)
	p.Images = decodeList(images)
	return p, nil
}

// decodeList parses a JSONB array column. Malformed values yield nil.
func decodeList(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || len(out) == 0 {
		return nil
	}
	return out
}
