package listing

// ViewState binds a pipeline to a source snapshot and the current
// criteria. Every setter recomputes the view synchronously. A ViewState
// is not safe for concurrent use; hold one per page session or request.
type ViewState[T any] struct {
	pipeline *Pipeline[T]
	source   []T
	criteria Criteria
	view     View[T]
}

// NewViewState returns a state over source with the pipeline's default
// criteria.
func NewViewState[T any](p *Pipeline[T], source []T) *ViewState[T] {
	s := &ViewState[T]{pipeline: p, source: source, criteria: p.DefaultCriteria()}
	s.recompute()
	return s
}

// View returns the current derived view.
func (s *ViewState[T]) View() View[T] {
	return s.view
}

// Criteria returns the current criteria.
func (s *ViewState[T]) Criteria() Criteria {
	return s.criteria
}

// SetSource replaces the source snapshot, keeping the criteria.
func (s *ViewState[T]) SetSource(source []T) {
	s.source = source
	s.recompute()
}

// SetSearch updates the search text. A changed query resets the page.
func (s *ViewState[T]) SetSearch(text string) {
	if normalizeQuery(text) != normalizeQuery(s.criteria.Search) {
		s.criteria.Page = 1
	}
	s.criteria.Search = text
	s.recompute()
}

// SetLocation updates the location text.
func (s *ViewState[T]) SetLocation(text string) {
	s.criteria.Location = text
	s.recompute()
}

// SetCategory replaces the category selection. A changed selection
// resets the page.
func (s *ViewState[T]) SetCategory(sel Selection) {
	if !sel.Equal(s.criteria.Category) {
		s.criteria.Page = 1
	}
	s.criteria.Category = sel
	s.recompute()
}

// ToggleCategory applies a chip click: the selected value deselects,
// any other value becomes the selection.
func (s *ViewState[T]) ToggleCategory(value string) {
	s.SetCategory(s.criteria.Category.Toggle(value))
}

// SetTag updates the qualitative tag. The page is kept.
func (s *ViewState[T]) SetTag(tag Tag) {
	s.criteria.Tag = tag
	s.recompute()
}

// SetSortKey updates the sort key. The page is kept.
func (s *ViewState[T]) SetSortKey(key SortKey) {
	s.criteria.Sort = key
	s.recompute()
}

// SetPageIndex moves to page n, clamped to the available pages.
func (s *ViewState[T]) SetPageIndex(n int) {
	s.criteria.Page = n
	s.recompute()
}

func (s *ViewState[T]) recompute() {
	s.view = s.pipeline.Derive(s.source, s.criteria)
	s.criteria.Page = s.view.Criteria.Page
}
