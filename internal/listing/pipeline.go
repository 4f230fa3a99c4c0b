package listing

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"bitary-listing-service/internal/domain"
)

// DefaultShopPageSize is the number of products on one shop page.
const DefaultShopPageSize = 10

// Fields maps an entity type onto the attributes the pipeline knows how
// to filter and sort by. A nil accessor disables every criterion that
// depends on it.
type Fields[T any] struct {
	Name     func(T) string
	Category func(T) string
	City     func(T) string
	Street   func(T) string
	Rating   func(T) float64
	Price    func(T) float64
}

// View is the derived output of one recomputation.
type View[T any] struct {
	Items    []T      // visible items, the page window when paginated
	Matched  int      // items that passed every filter
	Page     PageMeta // zero value when the pipeline is not paginated
	Criteria Criteria // criteria the view was derived from, page clamped
}

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	pageSize    int
	threshold   float64
	collation   language.Tag
	defaultSort SortKey
}

// WithPageSize enables windowing with the given page size. Zero or a
// negative size disables it.
func WithPageSize(size int) Option {
	return func(o *options) { o.pageSize = size }
}

// WithPremiumThreshold sets the minimum rating for TagPremium.
func WithPremiumThreshold(threshold float64) Option {
	return func(o *options) { o.threshold = threshold }
}

// WithCollation sets the language used for name ordering.
func WithCollation(tag language.Tag) Option {
	return func(o *options) { o.collation = tag }
}

// WithDefaultSort sets the sort key used when none is requested.
func WithDefaultSort(key SortKey) Option {
	return func(o *options) { o.defaultSort = key }
}

// Pipeline derives listing views for one entity type.
type Pipeline[T any] struct {
	fields Fields[T]
	opts   options
}

// New returns a pipeline over the given field mapping.
func New[T any](fields Fields[T], opts ...Option) *Pipeline[T] {
	o := options{threshold: DefaultPremiumThreshold, collation: language.English, defaultSort: SortDefault}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline[T]{fields: fields, opts: o}
}

// NewShopPipeline returns the shop listing pipeline: category and search
// filters, price/name ordering, windowed into pages of
// DefaultShopPageSize unless overridden.
func NewShopPipeline(opts ...Option) *Pipeline[domain.Product] {
	fields := Fields[domain.Product]{
		Name:     func(p domain.Product) string { return p.Name },
		Category: func(p domain.Product) string { return p.Category },
		Price:    func(p domain.Product) float64 { return p.Price },
	}
	return New(fields, append([]Option{WithPageSize(DefaultShopPageSize)}, opts...)...)
}

// NewClinicsPipeline returns the clinics listing pipeline: name search,
// city/street location filter, premium tag, rating/name ordering in
// relevance order by default. It is not paginated.
func NewClinicsPipeline(opts ...Option) *Pipeline[domain.Clinic] {
	fields := Fields[domain.Clinic]{
		Name:   func(c domain.Clinic) string { return c.Name },
		City:   func(c domain.Clinic) string { return c.Address.City },
		Street: func(c domain.Clinic) string { return c.Address.Street },
		Rating: func(c domain.Clinic) float64 { return c.Rating },
	}
	return New(fields, append([]Option{WithDefaultSort(SortRelevance)}, opts...)...)
}

// Paginated reports whether the pipeline windows its output.
func (p *Pipeline[T]) Paginated() bool {
	return p.opts.pageSize > 0
}

// PageSize returns the configured page size, zero when not paginated.
func (p *Pipeline[T]) PageSize() int {
	if !p.Paginated() {
		return 0
	}
	return p.opts.pageSize
}

// DefaultCriteria returns the criteria a listing starts from, with the
// pipeline's default sort key.
func (p *Pipeline[T]) DefaultCriteria() Criteria {
	c := DefaultCriteria()
	c.Sort = p.opts.defaultSort
	return c
}

// SortKeys lists the sort keys this pipeline accepts. Identity orders
// are always accepted; the rest need their field mapped.
func (p *Pipeline[T]) SortKeys() []SortKey {
	keys := []SortKey{SortDefault, SortRelevance}
	if p.fields.Rating != nil {
		keys = append(keys, SortRating)
	}
	if p.fields.Name != nil {
		keys = append(keys, SortNameAsc, SortNameDesc)
	}
	if p.fields.Price != nil {
		keys = append(keys, SortPriceAsc, SortPriceDesc)
	}
	return keys
}

// ParseSortKey parses s against SortKeys. An empty string yields the
// default sort key.
func (p *Pipeline[T]) ParseSortKey(s string) (SortKey, error) {
	if strings.TrimSpace(s) == "" {
		return p.opts.defaultSort, nil
	}
	key, err := ParseSortKey(s)
	if err != nil {
		return "", err
	}
	if !slices.Contains(p.SortKeys(), key) {
		return "", fmt.Errorf("%w: %q is not available for this listing", ErrUnknownSortKey, s)
	}
	return key, nil
}

// Predicates returns the active predicates for c, in evaluation order.
func (p *Pipeline[T]) Predicates(c Criteria) []Predicate[T] {
	f := p.fields
	var preds []Predicate[T]
	if f.Category != nil && c.Category.IsSelected() {
		sel := c.Category
		preds = append(preds, func(item T) bool { return MatchesCategory(f.Category(item), sel) })
	}
	if f.Name != nil && normalizeQuery(c.Search) != "" {
		q := c.Search
		preds = append(preds, func(item T) bool { return MatchesSearch(f.Name(item), q) })
	}
	if (f.City != nil || f.Street != nil) && normalizeQuery(c.Location) != "" {
		q := c.Location
		preds = append(preds, func(item T) bool { return MatchesLocation(field(f.City, item), field(f.Street, item), q) })
	}
	if f.Rating != nil && c.Tag == TagPremium {
		threshold := p.opts.threshold
		preds = append(preds, func(item T) bool { return MatchesQualitativeTag(f.Rating(item), TagPremium, threshold) })
	}
	return preds
}

// Comparator returns the comparator for key, or nil to keep the filtered
// order. Keys that need a field the entity does not map resolve to nil.
func (p *Pipeline[T]) Comparator(key SortKey) Comparator[T] {
	f := p.fields
	switch key {
	case SortNameAsc, SortNameDesc:
		if f.Name != nil {
			return ByName(f.Name, p.opts.collation, key == SortNameDesc)
		}
	case SortRating:
		if f.Rating != nil {
			return ByRatingDesc(f.Rating)
		}
	case SortPriceAsc, SortPriceDesc:
		if f.Price != nil {
			return ByPrice(f.Price, key == SortPriceDesc)
		}
	}
	return nil
}

// Derive runs source through filter, sort and, when paginated, the page
// window. The requested page is clamped to [1, TotalPages].
func (p *Pipeline[T]) Derive(source []T, c Criteria) View[T] {
	filtered := Filter(source, p.Predicates(c)...)
	sorted := Sort(filtered, p.Comparator(c.Sort))

	view := View[T]{Matched: len(sorted), Criteria: c}
	if !p.Paginated() {
		view.Items = sorted
		view.Criteria.Page = 1
		return view
	}

	total := TotalPages(len(sorted), p.opts.pageSize)
	page := ClampPage(c.Page, total)
	view.Criteria.Page = page
	view.Items = Window(sorted, page, p.opts.pageSize)
	view.Page = PageMeta{
		Page:       page,
		PageSize:   p.opts.pageSize,
		TotalPages: total,
		TotalItems: len(sorted),
	}
	return view
}

func field[T any](get func(T) string, item T) string {
	if get == nil {
		return ""
	}
	return get(item)
}
