package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_UnmarshalJSON_TextualNumbers(t *testing.T) {
	body := `{
		"id": "12",
		"title": "Red Shoe",
		"category": "mens-shoes",
		"price": "49.99",
		"rating": "4.5",
		"stock": "3",
		"availabilitystatus": "In Stock",
		"tags": ["shoes", "red"]
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, "12", p.ID)
	assert.Equal(t, "Red Shoe", p.Title)
	assert.InDelta(t, 49.99, p.Price, 1e-9)
	assert.InDelta(t, 4.5, p.Rating, 1e-9)
	assert.Equal(t, 3, p.Stock)
	assert.Equal(t, []string{"shoes", "red"}, p.Tags)
}

func TestProduct_UnmarshalJSON_NumericID(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "price": 10}`), &p))

	assert.Equal(t, "7", p.ID)
	assert.Equal(t, 10.0, p.Price)
}

func TestProduct_UnmarshalJSON_MalformedPriceDefaultsToZero(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Lamp", "price": "n/a", "stock": null}`), &p))

	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, 0, p.Stock)
}

func TestProduct_UnmarshalJSON_EncodedTagArray(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"tags": "[\"a\",\"b\"]"}`), &p))

	assert.Equal(t, []string{"a", "b"}, p.Tags)
}

func TestProduct_InStock(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    bool
	}{
		{"positive stock", Product{Stock: 3, AvailabilityStatus: "Out of Stock"}, true},
		{"availability label only", Product{Stock: 0, AvailabilityStatus: "In Stock"}, true},
		{"neither signal", Product{Stock: 0, AvailabilityStatus: "Out of Stock"}, false},
		{"low stock label", Product{Stock: 0, AvailabilityStatus: "Low Stock"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.InStock())
		})
	}
}

func TestProduct_Equal(t *testing.T) {
	a := Product{ID: "1", Title: "Lamp", Category: "furniture", Price: 10, Tags: []string{"x"}}
	b := a
	b.Tags = []string{"x"}

	assert.True(t, a.Equal(b))

	b.Price = 11
	assert.False(t, a.Equal(b))

	c := a
	c.Tags = []string{"y"}
	assert.False(t, a.Equal(c))
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 12.5, ParsePrice(" 12.5 "))
	assert.Equal(t, 0.0, ParsePrice("twelve"))
	assert.Equal(t, 0.0, ParsePrice(""))
}
