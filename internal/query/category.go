package query

import "strings"

// DefaultCategoryIDs is the catalog's category enumeration in match-priority
// order. Earlier entries win when a query contains more than one key, so
// "mens-shoes" shadows "womens-shoes".
var DefaultCategoryIDs = []string{
	"mens-shoes", "groceries", "motorcycle", "home-decoration", "womens-bags",
	"sunglasses", "furniture", "beauty", "mobile-accessories", "laptops",
	"womens-watches", "tablets", "womens-shoes", "sports-accessories",
	"smartphones", "womens-dresses", "mens-watches", "mens-shirts", "vehicle",
	"fragrances", "womens-jewellery", "skin-care", "kitchen-accessories", "tops",
}

// Category is a catalog category and the compact key used to spot it in text.
type Category struct {
	ID  string
	Key string
}

// CategoryCatalog is an ordered, read-only list of known categories.
type CategoryCatalog struct {
	entries []Category
}

// NewCategoryCatalog builds a catalog that is consulted in the given order.
// Empty ids and ids whose key collapses to nothing are skipped.
func NewCategoryCatalog(ids ...string) *CategoryCatalog {
	entries := make([]Category, 0, len(ids))
	for _, id := range ids {
		key := compactKey(id)
		if key == "" {
			continue
		}
		entries = append(entries, Category{ID: id, Key: key})
	}
	return &CategoryCatalog{entries: entries}
}

// DefaultCategoryCatalog returns the catalog built from DefaultCategoryIDs.
func DefaultCategoryCatalog() *CategoryCatalog {
	return NewCategoryCatalog(DefaultCategoryIDs...)
}

// Categories returns a copy of the catalog entries in priority order.
func (c *CategoryCatalog) Categories() []Category {
	out := make([]Category, len(c.entries))
	copy(out, c.entries)
	return out
}

// Resolve returns the first category, in declared order, whose key occurs in
// the normalized text once its spaces are removed.
func (c *CategoryCatalog) Resolve(normalized string) (string, bool) {
	compact := strings.ReplaceAll(normalized, " ", "")
	if compact == "" {
		return "", false
	}
	for _, entry := range c.entries {
		if strings.Contains(compact, entry.Key) {
			return entry.ID, true
		}
	}
	return "", false
}
