package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bitary-listing-service/internal/domain"
	"bitary-listing-service/internal/listing"
	"bitary-listing-service/internal/store"
)

func productSnapshot(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		category := "food"
		if i%2 == 1 {
			category = "toys"
		}
		out[i] = domain.Product{ID: int64(i + 1), Name: fmt.Sprintf("Product %02d", i+1), Category: category, Price: float64(100 - i)}
	}
	return out
}

func newShopService(cats *MockCategoryStorer, prods *MockProductStorer, images *MockImageResolver) *ShopService {
	svc := NewShopService(cats, prods, nil, listing.NewShopPipeline(listing.WithPageSize(5)), nil)
	if images != nil {
		svc.images = images
	}
	return svc
}

func TestShopService_Browse_CategorySortAndPage(t *testing.T) {
	cats := new(MockCategoryStorer)
	prods := new(MockProductStorer)
	categories := []domain.Category{{ID: 1, Name: "food"}, {ID: 2, Name: "toys"}}

	cats.On("ListCategories", mock.Anything).Return(categories, nil).Once()
	prods.On("ListProducts", mock.Anything, store.ListProductsParams{}).Return(productSnapshot(20), nil).Once()

	page, err := newShopService(cats, prods, nil).Browse(context.Background(), ShopQuery{
		Category: "Food",
		Sort:     "price-asc",
		Page:     2,
	})

	require.NoError(t, err)
	assert.Equal(t, categories, page.Categories)
	assert.Equal(t, listing.PageMeta{Page: 2, PageSize: 5, TotalPages: 2, TotalItems: 10}, page.Page)
	require.Len(t, page.Products, 5)
	// food items are the odd IDs; price descends with ID, so ascending price reverses them
	assert.Equal(t, int64(9), page.Products[0].ID)
	assert.Equal(t, int64(1), page.Products[4].ID)

	cats.AssertExpectations(t)
	prods.AssertExpectations(t)
}

func TestShopService_Browse_SearchPushedUpstream(t *testing.T) {
	cats := new(MockCategoryStorer)
	prods := new(MockProductStorer)

	cats.On("ListCategories", mock.Anything).Return([]domain.Category{}, nil).Once()
	prods.On("ListProducts", mock.Anything, mock.MatchedBy(func(p store.ListProductsParams) bool {
		return p.SearchQuery != nil && *p.SearchQuery == "nexguard"
	})).Return([]domain.Product{{ID: 1, Name: "NexGuard Cream"}, {ID: 2, Name: "Other"}}, nil).Once()

	page, err := newShopService(cats, prods, nil).Browse(context.Background(), ShopQuery{Search: "nexguard", Page: 7})

	require.NoError(t, err)
	require.Len(t, page.Products, 1, "search is also applied in memory")
	assert.Equal(t, "NexGuard Cream", page.Products[0].Name)
	assert.Equal(t, 1, page.Page.Page, "page clamps to the only page")

	prods.AssertExpectations(t)
}

func TestShopService_Browse_EmptySnapshot(t *testing.T) {
	cats := new(MockCategoryStorer)
	prods := new(MockProductStorer)
	cats.On("ListCategories", mock.Anything).Return(nil, nil).Once()
	prods.On("ListProducts", mock.Anything, mock.Anything).Return(nil, nil).Once()

	page, err := newShopService(cats, prods, nil).Browse(context.Background(), ShopQuery{})

	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, 1, page.Page.TotalPages)
}

func TestShopService_Browse_InvalidSort(t *testing.T) {
	cats := new(MockCategoryStorer)
	prods := new(MockProductStorer)

	_, err := newShopService(cats, prods, nil).Browse(context.Background(), ShopQuery{Sort: "popular"})

	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.ErrorIs(t, err, listing.ErrUnknownSortKey)
	prods.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
}

func TestShopService_Browse_SortKeyNotInShop(t *testing.T) {
	cats := new(MockCategoryStorer)
	prods := new(MockProductStorer)

	// rating is a clinics ordering; products carry no rating.
	_, err := newShopService(cats, prods, nil).Browse(context.Background(), ShopQuery{Sort: "rating"})

	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.ErrorIs(t, err, listing.ErrUnknownSortKey)
	prods.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
}

func TestShopService_Browse_UpstreamFailure(t *testing.T) {
	cats := new(MockCategoryStorer)
	prods := new(MockProductStorer)
	cause := &pq.Error{Code: "08006"}

	cats.On("ListCategories", mock.Anything).Return(nil, nil).Maybe()
	prods.On("ListProducts", mock.Anything, mock.Anything).Return(nil, cause).Once()

	_, err := newShopService(cats, prods, nil).Browse(context.Background(), ShopQuery{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.True(t, upErr.Transient)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, "list products", upErr.Op)
}

func TestShopService_Browse_ResolvesImagesOnWindowOnly(t *testing.T) {
	cats := new(MockCategoryStorer)
	prods := new(MockProductStorer)
	images := new(MockImageResolver)

	snapshot := []domain.Product{
		{ID: 1, Name: "A", ImageURL: PtrTo("food/a.png")},
		{ID: 2, Name: "B", ImageURL: PtrTo("food/b.png")},
		{ID: 3, Name: "C"},
	}
	cats.On("ListCategories", mock.Anything).Return(nil, nil).Once()
	prods.On("ListProducts", mock.Anything, mock.Anything).Return(snapshot, nil).Once()
	images.On("ResolveImageURL", mock.Anything, "food/a.png").Return("https://img/a.png", nil).Once()
	images.On("ResolveImageURL", mock.Anything, "food/b.png").Return("", errors.New("boom")).Once()

	page, err := newShopService(cats, prods, images).Browse(context.Background(), ShopQuery{})

	require.NoError(t, err)
	require.Len(t, page.Products, 3)
	require.NotNil(t, page.Products[0].ImageURL)
	assert.Equal(t, "https://img/a.png", *page.Products[0].ImageURL)
	assert.Nil(t, page.Products[1].ImageURL)
	assert.Equal(t, "food/a.png", *snapshot[0].ImageURL, "snapshot must not be mutated")

	images.AssertExpectations(t)
}

func TestShopService_GetProduct(t *testing.T) {
	prods := new(MockProductStorer)
	prods.On("GetProductByID", mock.Anything, int64(3)).Return(&domain.Product{ID: 3, Name: "Leash"}, nil).Once()
	prods.On("GetProductByID", mock.Anything, int64(4)).Return(nil, store.ErrProductNotFound).Once()
	prods.On("GetProductByID", mock.Anything, int64(5)).Return(nil, errors.New("conn reset")).Once()
	svc := newShopService(new(MockCategoryStorer), prods, nil)

	p, err := svc.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Leash", p.Name)

	_, err = svc.GetProduct(context.Background(), 4)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, store.ErrProductNotFound)

	_, err = svc.GetProduct(context.Background(), 5)
	assert.ErrorIs(t, err, ErrUpstream)

	prods.AssertExpectations(t)
}
