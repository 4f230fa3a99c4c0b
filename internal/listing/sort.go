package listing

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two items, returning a negative, zero or positive
// value. A nil Comparator keeps the existing order.
type Comparator[T any] func(a, b T) int

// Sort returns a sorted copy of items. The sort is stable, so items that
// compare equal keep their relative order. A nil cmp returns the copy in
// input order.
func Sort[T any](items []T, cmp Comparator[T]) []T {
	out := make([]T, len(items))
	copy(out, items)
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// ByName orders items by name using the collation rules of tag.
// The returned comparator owns a collator and must not be shared across
// goroutines.
func ByName[T any](name func(T) string, tag language.Tag, desc bool) Comparator[T] {
	c := collate.New(tag, collate.IgnoreCase)
	return func(a, b T) int {
		r := c.CompareString(name(a), name(b))
		if desc {
			return -r
		}
		return r
	}
}

// ByRatingDesc orders items from the highest rating to the lowest.
func ByRatingDesc[T any](rating func(T) float64) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(rating(b), rating(a))
	}
}

// ByPrice orders items by price, ascending unless desc is set.
func ByPrice[T any](price func(T) float64, desc bool) Comparator[T] {
	return func(a, b T) int {
		if desc {
			return cmp.Compare(price(b), price(a))
		}
		return cmp.Compare(price(a), price(b))
	}
}
