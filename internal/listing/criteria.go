package listing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSortKey = errors.New("listing: unknown sort key")
	ErrUnknownTag     = errors.New("listing: unknown qualitative tag")
)

// SortKey selects the comparator applied after filtering.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortRelevance SortKey = "relevance"
	SortRating    SortKey = "rating"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// ParseSortKey parses a sort key. An empty string yields SortDefault.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "":
		return SortDefault, nil
	case SortDefault, SortRelevance, SortRating, SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
		return key, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Tag is the qualitative filter applied to rated items.
type Tag string

const (
	TagAll     Tag = "all"
	TagPremium Tag = "premium"
)

// ParseTag parses a qualitative tag. An empty string yields TagAll.
func ParseTag(s string) (Tag, error) {
	tag := Tag(strings.ToLower(strings.TrimSpace(s)))
	switch tag {
	case "":
		return TagAll, nil
	case TagAll, TagPremium:
		return tag, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTag, s)
}

// Criteria is the full set of independent filter, sort and page inputs.
type Criteria struct {
	Search   string
	Location string
	Category Selection
	Tag      Tag
	Sort     SortKey
	Page     int // 1-based
}

// DefaultCriteria returns the state a listing page starts in: no
// constraints, tag "all", default order, first page.
func DefaultCriteria() Criteria {
	return Criteria{
		Category: NoSelection(),
		Tag:      TagAll,
		Sort:     SortDefault,
		Page:     1,
	}
}
