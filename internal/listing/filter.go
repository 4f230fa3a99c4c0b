package listing

// Filter returns the items of source for which every predicate holds, in
// their original order. With no predicates it returns a copy of source.
// The result is never nil.
func Filter[T any](source []T, predicates ...Predicate[T]) []T {
	out := make([]T, 0, len(source))
	for _, item := range source {
		if matchAll(item, predicates) {
			out = append(out, item)
		}
	}
	return out
}

func matchAll[T any](item T, predicates []Predicate[T]) bool {
	for _, p := range predicates {
		if !p(item) {
			return false
		}
	}
	return true
}
