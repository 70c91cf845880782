package similarity

import (
	"sort"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
	"github.com/San2021331091/Smart-Cart-Backend/internal/textvec"
)

// DefaultK is the number of recommendations returned when none is configured.
const DefaultK = 5

// Engine ranks catalog products by textual closeness to a reference product.
// Each call fits its own vector space, so results depend only on the pool.
type Engine struct{}

// New creates a similarity engine.
func New() *Engine {
	return &Engine{}
}

// Document is the text a product is compared by: its category and title.
func Document(p domain.Product) string {
	return p.Category + " " + p.Title
}

type neighbor struct {
	index    int
	distance float64
}

// Similar returns up to k products from pool, nearest first by cosine
// distance, never including a product equal to ref. The k+1 nearest
// neighbours are taken before ref is filtered out, so a ref that belongs to
// the pool does not cost a recommendation.
func (e *Engine) Similar(ref *domain.Product, pool []domain.Product, k int) []domain.Product {
	if ref == nil || len(pool) == 0 || k <= 0 {
		return []domain.Product{}
	}

	docs := make([]string, len(pool))
	for i, p := range pool {
		docs[i] = Document(p)
	}
	space, vectors := textvec.FitTransform(docs)

	var target textvec.Vector
	found := false
	for i, p := range pool {
		if p.Equal(*ref) {
			target, found = vectors[i], true
			break
		}
	}
	if !found {
		target = space.Transform(Document(*ref))
	}

	neighbors := make([]neighbor, len(pool))
	for i, v := range vectors {
		neighbors[i] = neighbor{index: i, distance: textvec.CosineDistance(target, v)}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})

	n := min(k+1, len(neighbors))
	out := make([]domain.Product, 0, min(k, n))
	for _, nb := range neighbors[:n] {
		p := pool[nb.index]
		if p.Equal(*ref) {
			continue
		}
		out = append(out, p)
		if len(out) == k {
			break
		}
	}
	return out
}
