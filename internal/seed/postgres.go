package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/database"
)

// DefaultBatchSize keeps each INSERT well under the 65535 parameter limit.
const DefaultBatchSize = 500

const createProductsTable = `
	CREATE TABLE IF NOT EXISTS products (
		id                 INTEGER PRIMARY KEY,
		title              TEXT NOT NULL,
		description        TEXT,
		category           TEXT,
		price              NUMERIC(12, 2),
		discountpercentage NUMERIC(5, 2),
		rating             NUMERIC(3, 2),
		stock              INTEGER,
		tags               JSONB,
		brand              TEXT,
		sku                TEXT,
		availabilitystatus TEXT,
		thumbnail          TEXT,
		images             JSONB
	)`

const productColumnCount = 14

// MaxBatchSize is the most rows one INSERT can carry within PostgreSQL's
// 65535 bind parameter limit.
const MaxBatchSize = 65535 / productColumnCount

// EnsureSchema creates the products table when it does not exist.
func EnsureSchema(ctx context.Context, db database.DBTX) error {
	if _, err := db.Exec(ctx, createProductsTable); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

// Upsert inserts products in batches, overwriting rows with the same id so
// re-runs are idempotent. batchSize is clamped to MaxBatchSize. It returns
// the number of rows written.
func Upsert(ctx context.Context, db database.DBTX, products []domain.Product, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	batchSize = min(batchSize, MaxBatchSize)

	var written int64
	for start := 0; start < len(products); start += batchSize {
		end := min(start+batchSize, len(products))

		sql, args, err := buildUpsert(products[start:end])
		if err != nil {
			return written, err
		}
		tag, err := db.Exec(ctx, sql, args...)
		if err != nil {
			return written, fmt.Errorf("insert products batch %d-%d: %w", start, end, err)
		}
		written += tag.RowsAffected()
	}
	return written, nil
}

func buildUpsert(batch []domain.Product) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO products (id, title, description, category, price, discountpercentage, rating, stock, tags, brand, sku, availabilitystatus, thumbnail, images) VALUES ")

	args := make([]any, 0, len(batch)*productColumnCount)
	for i, p := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		placeholders := make([]string, productColumnCount)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", i*productColumnCount+c+1)
		}
		sb.WriteString("(" + strings.Join(placeholders, ", ") + ")")

		id, err := strconv.Atoi(p.ID)
		if err != nil {
			return "", nil, fmt.Errorf("product id %q is not numeric: %w", p.ID, err)
		}
		tags, err := json.Marshal(nonNil(p.Tags))
		if err != nil {
			return "", nil, fmt.Errorf("marshal tags of product %s: %w", p.ID, err)
		}
		images, err := json.Marshal(nonNil(p.Images))
		if err != nil {
			return "", nil, fmt.Errorf("marshal images of product %s: %w", p.ID, err)
		}

		args = append(args,
			id,
			p.Title,
			p.Description,
			p.Category,
			p.Price,
			p.DiscountPercentage,
			p.Rating,
			p.Stock,
			string(tags),
			p.Brand,
			p.SKU,
			p.AvailabilityStatus,
			p.Thumbnail,
			string(images),
		)
	}

	sb.WriteString(` ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		category = EXCLUDED.category,
		price = EXCLUDED.price,
		discountpercentage = EXCLUDED.discountpercentage,
		rating = EXCLUDED.rating,
		stock = EXCLUDED.stock,
		tags = EXCLUDED.tags,
		brand = EXCLUDED.brand,
		sku = EXCLUDED.sku,
		availabilitystatus = EXCLUDED.availabilitystatus,
		thumbnail = EXCLUDED.thumbnail,
		images = EXCLUDED.images`)

	return sb.String(), args, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
