package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bitary-listing-service/internal/domain"
)

func TestViewState_Defaults(t *testing.T) {
	s := NewViewState(NewShopPipeline(), manyProducts(25))

	assert.Equal(t, DefaultCriteria(), s.Criteria())
	assert.Len(t, s.View().Items, 10)
	assert.Equal(t, 1, s.View().Page.Page)

	clinics := NewViewState(NewClinicsPipeline(), sampleClinics())
	assert.Equal(t, SortRelevance, clinics.Criteria().Sort)
	assert.Equal(t, TagAll, clinics.Criteria().Tag)
}

func TestViewState_CategoryChangeResetsPage(t *testing.T) {
	src := manyProducts(25)
	src[0].Category = "toys"
	s := NewViewState(NewShopPipeline(), src)

	s.SetPageIndex(3)
	assert.Equal(t, 3, s.View().Page.Page)

	s.SetCategory(Select("food"))
	assert.Equal(t, 1, s.Criteria().Page)
	assert.Equal(t, 1, s.View().Page.Page)
	assert.Equal(t, 24, s.View().Page.TotalItems)
}

func TestViewState_ToggleCategoryResetsPage(t *testing.T) {
	s := NewViewState(NewShopPipeline(), manyProducts(25))
	s.ToggleCategory("food")
	s.SetPageIndex(2)

	s.ToggleCategory("food")
	assert.False(t, s.Criteria().Category.IsSelected())
	assert.Equal(t, 1, s.Criteria().Page)
}

func TestViewState_SearchChangeResetsPage(t *testing.T) {
	s := NewViewState(NewShopPipeline(), manyProducts(25))
	s.SetPageIndex(2)

	s.SetSearch("  ")
	assert.Equal(t, 2, s.Criteria().Page, "blank search is no change")

	s.SetSearch("item")
	assert.Equal(t, 1, s.Criteria().Page)
}

func TestViewState_SortChangeKeepsPage(t *testing.T) {
	s := NewViewState(NewShopPipeline(), manyProducts(25))
	s.SetPageIndex(2)

	s.SetSortKey(SortPriceDesc)
	assert.Equal(t, 2, s.Criteria().Page)
	assert.Equal(t, int64(15), s.View().Items[0].ID)

	s.SetTag(TagPremium)
	assert.Equal(t, 2, s.Criteria().Page)
}

func TestViewState_PageClampedOnRecompute(t *testing.T) {
	s := NewViewState(NewShopPipeline(), manyProducts(25))
	s.SetPageIndex(99)
	assert.Equal(t, 3, s.Criteria().Page)

	s.SetSource(manyProducts(12))
	assert.Equal(t, 2, s.Criteria().Page)
	assert.Len(t, s.View().Items, 2)

	s.SetSource(nil)
	assert.Equal(t, 1, s.Criteria().Page)
	assert.Empty(t, s.View().Items)
}

func TestViewState_Clinics(t *testing.T) {
	s := NewViewState(NewClinicsPipeline(), sampleClinics())
	s.SetTag(TagPremium)
	s.SetSortKey(SortRating)
	assert.Equal(t, []string{"Animal Clinic", "Pet Care"}, clinicNames(s.View().Items))

	s.SetLocation("giza")
	assert.Equal(t, []string{"Animal Clinic"}, clinicNames(s.View().Items))
	assert.Equal(t, "1 Clinics Found", ClinicsFoundLabel(s.View().Matched))

	s.SetSource([]domain.Clinic{})
	assert.Empty(t, s.View().Items)
}
