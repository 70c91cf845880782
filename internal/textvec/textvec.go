// Package textvec builds TF-IDF vector spaces over short product texts and
// compares them by cosine similarity.
//
// A Space is fitted to one document set and never updated afterwards: terms
// that were not seen while fitting carry no weight when later text is
// projected into it. Weights follow the smoothed scheme
// idf(t) = ln((1+n)/(1+df(t))) + 1 applied to raw term counts, and every
// vector is L2-normalised, so the cosine of two vectors is their dot product.
package textvec

import (
	"math"
	"regexp"
	"slices"
	"strings"
)

// tokenPattern keeps runs of two or more letters, digits or underscores.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and splits it into terms.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Vector is a sparse, L2-normalised term-weight vector. A nil or empty vector
// is the zero vector.
type Vector map[string]float64

// Space is a fitted TF-IDF vocabulary.
type Space struct {
	idf map[string]float64
}

// Fit learns the vocabulary and inverse document frequencies of docs.
func Fit(docs []string) *Space {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range Tokenize(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return &Space{idf: idf}
}

// FitTransform fits a space to docs and returns the vector of every document
// in input order.
func FitTransform(docs []string) (*Space, []Vector) {
	s := Fit(docs)
	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		vectors[i] = s.Transform(doc)
	}
	return s, vectors
}

// Transform projects text into the space. Unknown terms are ignored.
func (s *Space) Transform(text string) Vector {
	counts := make(map[string]float64)
	// order keeps first-occurrence order so the norm is summed the same way
	// for equal texts.
	var order []string
	for _, term := range Tokenize(text) {
		if _, ok := s.idf[term]; !ok {
			continue
		}
		if _, ok := counts[term]; !ok {
			order = append(order, term)
		}
		counts[term]++
	}
	if len(order) == 0 {
		return nil
	}

	var norm float64
	for _, term := range order {
		w := counts[term] * s.idf[term]
		counts[term] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for _, term := range order {
		counts[term] /= norm
	}
	return Vector(counts)
}

// Size returns the number of terms in the vocabulary.
func (s *Space) Size() int {
	return len(s.idf)
}

// Cosine returns the cosine similarity of two normalised vectors. Zero
// vectors are orthogonal to everything, including each other. Terms are
// summed in lexical order, so equal inputs always give bit-identical scores.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	terms := make([]string, 0, len(a))
	for term := range a {
		if _, ok := b[term]; ok {
			terms = append(terms, term)
		}
	}
	slices.Sort(terms)

	var dot float64
	for _, term := range terms {
		dot += a[term] * b[term]
	}
	return dot
}

// CosineDistance returns 1 - Cosine(a, b).
func CosineDistance(a, b Vector) float64 {
	return 1 - Cosine(a, b)
}
