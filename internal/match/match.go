package match

import (
	"strings"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
	"github.com/San2021331091/Smart-Cart-Backend/internal/textvec"
)

// DefaultThreshold is the minimum cosine similarity a title must exceed to be
// accepted when no title contains the query verbatim.
const DefaultThreshold = 0.3

// Strategy names how a match was found.
type Strategy string

const (
	StrategyNone       Strategy = "none"
	StrategySubstring  Strategy = "substring"
	StrategySimilarity Strategy = "similarity"
)

// Result is the outcome of resolving a product reference.
type Result struct {
	Product  domain.Product
	Found    bool
	Score    float64
	Strategy Strategy
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// Resolver maps a free-text product reference to one catalog product. It holds
// no mutable state and is safe for concurrent use.
type Resolver struct {
	threshold float64
}

// NewResolver creates a resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Threshold returns the similarity cutoff in use.
func (r *Resolver) Threshold() float64 {
	return r.threshold
}

// BestMatch returns the candidate that best matches query, or false when none
// is good enough.
func (r *Resolver) BestMatch(query string, candidates []domain.Product) (domain.Product, bool) {
	res := r.Resolve(query, candidates)
	return res.Product, res.Found
}

// Resolve picks the first candidate whose title contains the query
// (case-insensitively). Failing that, it ranks titles by TF-IDF cosine
// similarity to the query over a space fitted to the query and the titles,
// keeping the earliest of equally scored candidates, and accepts the winner
// only above the threshold.
func (r *Resolver) Resolve(query string, candidates []domain.Product) Result {
	if len(candidates) == 0 {
		return Result{Strategy: StrategyNone}
	}

	q := strings.ToLower(query)
	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = strings.ToLower(c.Title)
		if strings.Contains(titles[i], q) {
			return Result{Product: c, Found: true, Score: 1, Strategy: StrategySubstring}
		}
	}

	docs := make([]string, 0, len(titles)+1)
	docs = append(docs, q)
	docs = append(docs, titles...)
	_, vectors := textvec.FitTransform(docs)

	best, bestScore := -1, 0.0
	for i := range candidates {
		score := textvec.Cosine(vectors[0], vectors[i+1])
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}

	if bestScore > r.threshold {
		return Result{Product: candidates[best], Found: true, Score: bestScore, Strategy: StrategySimilarity}
	}
	return Result{Score: bestScore, Strategy: StrategyNone}
}
