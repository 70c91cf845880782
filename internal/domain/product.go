package domain

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// AvailabilityInStock is the catalog's availability label for purchasable items.
const AvailabilityInStock = "in stock"

// Product is a catalog product record. Records are fetched fresh per request
// and treated as read-only values.
type Product struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountpercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Tags               []string `json:"tags,omitempty"`
	Brand              string   `json:"brand,omitempty"`
	SKU                string   `json:"sku,omitempty"`
	AvailabilityStatus string   `json:"availabilitystatus"`
	Thumbnail          string   `json:"thumbnail,omitempty"`
	Images             []string `json:"images,omitempty"`
}

// InStock reports whether the product can be bought. Either a positive stock
// count or an "In Stock" availability label is sufficient.
func (p Product) InStock() bool {
	return p.Stock > 0 || strings.EqualFold(strings.TrimSpace(p.AvailabilityStatus), AvailabilityInStock)
}

// Equal reports whether two products carry the same values.
func (p Product) Equal(o Product) bool {
	return p.ID == o.ID &&
		p.Title == o.Title &&
		p.Description == o.Description &&
		p.Category == o.Category &&
		p.Price == o.Price &&
		p.DiscountPercentage == o.DiscountPercentage &&
		p.Rating == o.Rating &&
		p.Stock == o.Stock &&
		p.Brand == o.Brand &&
		p.SKU == o.SKU &&
		p.AvailabilityStatus == o.AvailabilityStatus &&
		p.Thumbnail == o.Thumbnail &&
		slices.Equal(p.Tags, o.Tags) &&
		slices.Equal(p.Images, o.Images)
}

// rawProduct mirrors Product with every field left undecoded. The catalog
// service returns database rows where numbers are frequently encoded as text.
type rawProduct struct {
	ID                 json.RawMessage `json:"id"`
	Title              json.RawMessage `json:"title"`
	Description        json.RawMessage `json:"description"`
	Category           json.RawMessage `json:"category"`
	Price              json.RawMessage `json:"price"`
	DiscountPercentage json.RawMessage `json:"discountpercentage"`
	Rating             json.RawMessage `json:"rating"`
	Stock              json.RawMessage `json:"stock"`
	Tags               json.RawMessage `json:"tags"`
	Brand              json.RawMessage `json:"brand"`
	SKU                json.RawMessage `json:"sku"`
	AvailabilityStatus json.RawMessage `json:"availabilitystatus"`
	Thumbnail          json.RawMessage `json:"thumbnail"`
	Images             json.RawMessage `json:"images"`
}

// UnmarshalJSON decodes a product leniently. Malformed numeric values fall
// back to zero instead of failing the whole record.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw rawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Product{
		ID:                 decodeString(raw.ID),
		Title:              decodeString(raw.Title),
		Description:        decodeString(raw.Description),
		Category:           decodeString(raw.Category),
		Price:              decodeFloat(raw.Price),
		DiscountPercentage: decodeFloat(raw.DiscountPercentage),
		Rating:             decodeFloat(raw.Rating),
		Stock:              decodeInt(raw.Stock),
		Tags:               decodeStrings(raw.Tags),
		Brand:              decodeString(raw.Brand),
		SKU:                decodeString(raw.SKU),
		AvailabilityStatus: decodeString(raw.AvailabilityStatus),
		Thumbnail:          decodeString(raw.Thumbnail),
		Images:             decodeStrings(raw.Images),
	}
	return nil
}

// ParsePrice coerces a textual price into a float, returning 0 when the text
// is not a number.
func ParsePrice(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func decodeFloat(raw json.RawMessage) float64 {
	if isNull(raw) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParsePrice(s)
	}
	return 0
}

func decodeInt(raw json.RawMessage) int {
	f := decodeFloat(raw)
	return int(f)
}

// decodeStrings accepts a JSON array of strings or a string holding an
// encoded array, which is how jsonb columns surface through some drivers.
func decodeStrings(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err == nil {
		return out
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil && encoded != "" {
		if err := json.Unmarshal([]byte(encoded), &out); err == nil {
			return out
		}
	}
	return nil
}
