package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Men's Shoes!!", "men s shoes"},
		{"  Home--Decoration  ", "home decoration"},
		{"iPhone 15 Pro", "iphone 15 pro"},
		{"$$$", ""},
		{"", ""},
		{"café au lait", "caf au lait"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Is the RED shoe in stock?",
		"laptops under $500",
		"  --weird__input--  ",
		"Ünïcödé & symbols <> 12.50",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestExtractPriceBounds(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantUpper *float64
		wantLower *float64
	}{
		{"below with dollar", "laptops below $500", ptr(500), nil},
		{"less than", "shoes less than 20.5", ptr(20.5), nil},
		{"under", "under 30", ptr(30), nil},
		{"symbol", "price < 15", ptr(15), nil},
		{"above", "watches above 100", nil, ptr(100)},
		{"more than", "more than $7.25", nil, ptr(7.25)},
		{"over", "over 9", nil, ptr(9)},
		{"greater symbol", ">3", nil, ptr(3)},
		{"both", "over 10 and under 50", ptr(50), ptr(10)},
		{"none", "show me laptops", nil, nil},
		{"negative not matched", "under -5", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upper, lower := ExtractPriceBounds(tt.in)
			assert.Equal(t, tt.wantUpper, upper)
			assert.Equal(t, tt.wantLower, lower)
		})
	}
}

func TestCategoryCatalog_Resolve(t *testing.T) {
	catalog := DefaultCategoryCatalog()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"mens shoes", "mens-shoes", true},
		{"show me some skin care", "skin-care", true},
		{"home decoration ideas", "home-decoration", true},
		{"smartphones", "smartphones", true},
		{"what is the weather", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := catalog.Resolve(Normalize(tt.in))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryCatalog_FirstDeclaredWins(t *testing.T) {
	// "womensshoes" contains both "womensshoes" and "mensshoes"; the default
	// catalog declares mens-shoes first.
	got, ok := DefaultCategoryCatalog().Resolve(Normalize("womens shoes"))
	require.True(t, ok)
	assert.Equal(t, "mens-shoes", got)

	reversed := NewCategoryCatalog("womens-shoes", "mens-shoes")
	got, ok = reversed.Resolve(Normalize("womens shoes"))
	require.True(t, ok)
	assert.Equal(t, "womens-shoes", got)
}

func TestCategoryCatalog_OverlappingKeys(t *testing.T) {
	catalog := NewCategoryCatalog("mens-shoes", "shoes")

	got, ok := catalog.Resolve("cheap mensshoes")
	require.True(t, ok)
	assert.Equal(t, "mens-shoes", got)

	got, ok = NewCategoryCatalog("shoes", "mens-shoes").Resolve("cheap mensshoes")
	require.True(t, ok)
	assert.Equal(t, "shoes", got)
}

func TestCategoryCatalog_DefaultHas24Entries(t *testing.T) {
	cats := DefaultCategoryCatalog().Categories()
	require.Len(t, cats, 24)
	assert.Equal(t, Category{ID: "mens-shoes", Key: "mensshoes"}, cats[0])
	assert.Equal(t, Category{ID: "tops", Key: "tops"}, cats[23])
}

func TestNewCategoryCatalog_SkipsEmptyKeys(t *testing.T) {
	catalog := NewCategoryCatalog("", "--", "tops")
	assert.Len(t, catalog.Categories(), 1)
}

func TestParser_Parse(t *testing.T) {
	p := NewParser(nil)

	t.Run("greeting", func(t *testing.T) {
		parsed := p.Parse("  Hello ")
		assert.True(t, parsed.Greeting)
		assert.Equal(t, "hello", parsed.Raw)
	})

	t.Run("greeting must be exact", func(t *testing.T) {
		assert.False(t, p.Parse("hello there").Greeting)
	})

	t.Run("stock check", func(t *testing.T) {
		parsed := p.Parse("Is the Red Shoe in stock?")
		require.True(t, parsed.IsStock)
		assert.Equal(t, "red shoe", parsed.StockTarget)
	})

	t.Run("availability phrasing", func(t *testing.T) {
		parsed := p.Parse("is the essence mascara available")
		require.True(t, parsed.IsStock)
		assert.Equal(t, "essence mascara", parsed.StockTarget)
	})

	t.Run("category with price", func(t *testing.T) {
		parsed := p.Parse("Laptops under $1000")
		require.True(t, parsed.HasCategory)
		assert.Equal(t, "laptops", parsed.Category)
		require.NotNil(t, parsed.PriceUpper)
		assert.Equal(t, 1000.0, *parsed.PriceUpper)
		assert.Nil(t, parsed.PriceLower)
	})

	t.Run("nothing recognised", func(t *testing.T) {
		parsed := p.Parse("what is the weather")
		assert.False(t, parsed.Greeting)
		assert.False(t, parsed.IsStock)
		assert.False(t, parsed.HasCategory)
		assert.Nil(t, parsed.PriceUpper)
		assert.Nil(t, parsed.PriceLower)
	})
}

func TestStockTarget_Malformed(t *testing.T) {
	_, ok := StockTarget("is the in stock")
	assert.False(t, ok)

	_, ok = StockTarget("do you have shoes")
	assert.False(t, ok)
}

func ptr(v float64) *float64 { return &v }
