package query

import (
	"regexp"
	"strconv"
)

var (
	upperBoundPattern = regexp.MustCompile(`(?:below|less than|under|<)\s*\$?(\d+(\.\d+)?)`)
	lowerBoundPattern = regexp.MustCompile(`(?:above|more than|over|>)\s*\$?(\d+(\.\d+)?)`)
)

// ExtractPriceBounds finds "below/less than/under/<" and "above/more than/over/>"
// price constraints in lowercased input. Either bound is nil when absent or
// when the captured number cannot be parsed.
func ExtractPriceBounds(lowered string) (upper, lower *float64) {
	return matchBound(upperBoundPattern, lowered), matchBound(lowerBoundPattern, lowered)
}

func matchBound(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
