// Package seed generates a deterministic demo catalog spread over the
// storefront's categories, for the memory backend's seed file or for loading
// into the products table.
package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
	"github.com/San2021331091/Smart-Cart-Backend/internal/query"
)

// DefaultCount is the number of products generated when none is requested.
const DefaultCount = 240

// DefaultSeed makes re-runs produce the same catalog.
const DefaultSeed uint64 = 42

var brands = []string{
	"Acme", "Northwind", "Contoso", "Globex", "Initech",
	"Umbra", "Vertex", "Lumen", "Orbit", "Summit",
}

var colors = []string{
	"Black", "White", "Red", "Blue", "Green", "Grey", "Beige", "Navy", "Pink", "Brown",
}

// typesPerCategory maps each category id to product type names.
var typesPerCategory = map[string][]string{
	"mens-shoes":          {"Running Shoe", "Leather Loafer", "Canvas Sneaker", "Hiking Boot"},
	"groceries":           {"Organic Honey", "Green Tea", "Olive Oil", "Basmati Rice"},
	"motorcycle":          {"Sport Motorcycle", "Cruiser Motorcycle", "Scooter"},
	"home-decoration":     {"Table Lamp", "Wall Clock", "Photo Frame", "Scented Candle"},
	"womens-bags":         {"Leather Handbag", "Tote Bag", "Crossbody Bag", "Clutch"},
	"sunglasses":          {"Aviator Sunglasses", "Round Sunglasses", "Sport Sunglasses"},
	"furniture":           {"Office Chair", "Coffee Table", "Bookshelf", "Sofa"},
	"beauty":              {"Lipstick", "Mascara", "Eyeshadow Palette", "Face Powder"},
	"mobile-accessories":  {"Phone Case", "Wireless Charger", "Power Bank", "Screen Protector"},
	"laptops":             {"Ultrabook Laptop", "Gaming Laptop", "Business Laptop"},
	"womens-watches":      {"Quartz Watch", "Smart Watch", "Bracelet Watch"},
	"tablets":             {"Android Tablet", "Drawing Tablet", "Kids Tablet"},
	"womens-shoes":        {"Ballet Flat", "Heeled Sandal", "Ankle Boot", "Sneaker"},
	"sports-accessories":  {"Yoga Mat", "Tennis Racket", "Football", "Dumbbell Set"},
	"smartphones":         {"5G Smartphone", "Budget Smartphone", "Foldable Smartphone"},
	"womens-dresses":      {"Maxi Dress", "Midi Dress", "Wrap Dress", "Shirt Dress"},
	"mens-watches":        {"Chronograph Watch", "Diver Watch", "Dress Watch"},
	"mens-shirts":         {"Oxford Shirt", "Flannel Shirt", "Linen Shirt", "Polo Shirt"},
	"vehicle":             {"Electric Sedan", "Compact SUV", "Pickup Truck"},
	"fragrances":          {"Eau de Parfum", "Eau de Toilette", "Body Mist"},
	"womens-jewellery":    {"Pendant Necklace", "Hoop Earrings", "Charm Bracelet", "Ring"},
	"skin-care":           {"Moisturizer", "Sunscreen", "Face Serum", "Cleanser"},
	"kitchen-accessories": {"Chef Knife", "Cutting Board", "Frying Pan", "Blender"},
	"tops":                {"Crop Top", "Tank Top", "Blouse", "Tunic"},
}

// priceRange is the [min, max) price band per category. Categories without an
// entry use defaultPriceRange.
var priceRange = map[string][2]float64{
	"groceries":   {1, 30},
	"motorcycle":  {2000, 15000},
	"vehicle":     {15000, 60000},
	"laptops":     {400, 3000},
	"smartphones": {150, 1500},
	"tablets":     {100, 1200},
	"furniture":   {50, 1500},
}

var defaultPriceRange = [2]float64{5, 250}

// Generate returns n products with ids "1".."n", assigned to categories in
// their declared order. The same rng state yields the same catalog.
func Generate(rng *rand.Rand, n int) []domain.Product {
	categories := query.DefaultCategoryIDs
	products := make([]domain.Product, 0, max(n, 0))

	for i := 0; i < n; i++ {
		category := categories[i%len(categories)]
		types := typesPerCategory[category]
		productType := types[rng.IntN(len(types))]
		brand := brands[rng.IntN(len(brands))]
		color := colors[rng.IntN(len(colors))]

		bounds, ok := priceRange[category]
		if !ok {
			bounds = defaultPriceRange
		}
		price := round2(bounds[0] + rng.Float64()*(bounds[1]-bounds[0]))

		// Roughly one product in eight is sold out.
		stock := 0
		if rng.IntN(8) != 0 {
			stock = 1 + rng.IntN(150)
		}

		id := strconv.Itoa(i + 1)
		slug := strings.ToLower(strings.ReplaceAll(productType, " ", "-"))

		products = append(products, domain.Product{
			ID:                 id,
			Title:              fmt.Sprintf("%s %s %s", brand, color, productType),
			Description:        fmt.Sprintf("%s %s by %s.", color, strings.ToLower(productType), brand),
			Category:           category,
			Price:              price,
			DiscountPercentage: round2(rng.Float64() * 20),
			Rating:             round2(1 + rng.Float64()*4),
			Stock:              stock,
			Tags:               []string{category, strings.ToLower(color)},
			Brand:              brand,
			SKU:                fmt.Sprintf("%s-%s-%04d", strings.ToUpper(brand[:3]), strings.ToUpper(category[:3]), i+1),
			AvailabilityStatus: availability(stock),
			Thumbnail:          fmt.Sprintf("https://cdn.smartcart.example/products/%s/%s/thumbnail.webp", category, id),
			Images: []string{
				fmt.Sprintf("https://cdn.smartcart.example/products/%s/%s/%s-1.webp", category, id, slug),
			},
		})
	}
	return products
}

// WriteJSON writes products as an indented JSON array.
func WriteJSON(w io.Writer, products []domain.Product) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	return nil
}

func availability(stock int) string {
	switch {
	case stock == 0:
		return "Out of Stock"
	case stock < 10:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
