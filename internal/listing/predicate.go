package listing

import (
	"strings"

	"golang.org/x/text/cases"
)

// DefaultPremiumThreshold is the minimum rating for the "premium" tag.
const DefaultPremiumThreshold = 4.5

// Predicate tests a single item against one criterion.
type Predicate[T any] func(item T) bool

// normalizeQuery trims surrounding whitespace and case-folds a query.
// An empty result means "no constraint".
func normalizeQuery(query string) string {
	return fold(strings.TrimSpace(query))
}

// fold returns the case-folded form of s. A Caser keeps internal state,
// so a fresh one is used per call.
func fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Fold().String(s)
}

// MatchesSearch reports whether name contains query, ignoring case.
// An empty query matches everything.
func MatchesSearch(name, query string) bool {
	q := normalizeQuery(query)
	if q == "" {
		return true
	}
	return strings.Contains(fold(name), q)
}

// MatchesLocation reports whether city or street contains query,
// ignoring case. An empty query matches everything.
func MatchesLocation(city, street, query string) bool {
	q := normalizeQuery(query)
	if q == "" {
		return true
	}
	return strings.Contains(fold(city), q) || strings.Contains(fold(street), q)
}

// MatchesCategory reports whether category equals the selected value,
// ignoring case. Nothing selected matches everything.
func MatchesCategory(category string, sel Selection) bool {
	value, ok := sel.Value()
	if !ok {
		return true
	}
	return fold(category) == fold(value)
}

// MatchesQualitativeTag reports whether rating satisfies tag. TagAll
// (and any unknown tag) always matches; TagPremium requires
// rating >= threshold.
func MatchesQualitativeTag(rating float64, tag Tag, threshold float64) bool {
	if tag != TagPremium {
		return true
	}
	return rating >= threshold
}
