package listing

// PageMeta describes the window exposed to presentation.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"limit"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// TotalPages returns ceil(n/size) with a floor of one page, so an empty
// listing still reads "page 1 of 1".
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	return pages
}

// ClampPage clamps page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Window returns the items in [(page-1)*size, page*size). It does not
// clamp: a page outside the collection yields an empty slice.
func Window[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	// Compare page counts first; (page-1)*size overflows for huge pages.
	if page > TotalPages(len(items), size) {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
