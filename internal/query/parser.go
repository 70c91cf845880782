package query

import (
	"regexp"
	"strings"
)

var (
	greetings = map[string]struct{}{
		"hi":    {},
		"hello": {},
		"hey":   {},
	}

	stockCheckPattern = regexp.MustCompile(`is the (.+?) (in stock|available)\??`)
)

// Parsed is the structured form of a shopping question. It is built once by
// Parser.Parse and never modified afterwards.
type Parsed struct {
	// Raw is the trimmed, lowercased input.
	Raw        string
	Normalized string

	PriceUpper *float64
	PriceLower *float64

	Category    string
	HasCategory bool

	StockTarget string
	IsStock     bool

	Greeting bool
}

// Parser turns raw text into a Parsed query.
type Parser struct {
	categories *CategoryCatalog
}

// NewParser creates a parser that resolves categories against the given catalog.
func NewParser(categories *CategoryCatalog) *Parser {
	if categories == nil {
		categories = DefaultCategoryCatalog()
	}
	return &Parser{categories: categories}
}

// Parse extracts every supported constraint from text. Constructs that do not
// parse are left absent.
func (p *Parser) Parse(text string) Parsed {
	raw := strings.ToLower(strings.TrimSpace(text))

	parsed := Parsed{
		Raw:        raw,
		Normalized: Normalize(raw),
	}

	if _, ok := greetings[raw]; ok {
		parsed.Greeting = true
	}

	parsed.PriceUpper, parsed.PriceLower = ExtractPriceBounds(raw)
	parsed.Category, parsed.HasCategory = p.categories.Resolve(parsed.Normalized)

	if target, ok := StockTarget(raw); ok {
		parsed.StockTarget = target
		parsed.IsStock = true
	}

	return parsed
}

// StockTarget extracts <name> from "is the <name> in stock" or
// "is the <name> available". The phrase may appear anywhere in the text.
func StockTarget(lowered string) (string, bool) {
	m := stockCheckPattern.FindStringSubmatch(lowered)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", false
	}
	return name, true
}
