package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bitary-listing-service/internal/domain"
	"bitary-listing-service/internal/listing"
	"bitary-listing-service/internal/storage"
	"bitary-listing-service/internal/store"
)

// ShopQuery carries the shop listing controls.
type ShopQuery struct {
	Search   string
	Category string
	Sort     string
	Page     int
}

// ShopPage is one rendered page of the shop listing.
type ShopPage struct {
	Products   []domain.Product
	Categories []domain.Category
	Page       listing.PageMeta
}

type ShopService struct {
	categories store.CategoryStorer
	products   store.ProductStorer
	images     storage.ImageResolver
	pipeline   *listing.Pipeline[domain.Product]
	logger     *zap.Logger
}

func NewShopService(
	categories store.CategoryStorer,
	products store.ProductStorer,
	images storage.ImageResolver,
	pipeline *listing.Pipeline[domain.Product],
	logger *zap.Logger,
) *ShopService {
	if images == nil {
		images = storage.PassthroughResolver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopService{
		categories: categories,
		products:   products,
		images:     images,
		pipeline:   pipeline,
		logger:     logger,
	}
}

// Browse returns the page of products matching q along with the category
// chips. Search is pushed to the store; category, ordering and the page
// window are derived in memory.
func (s *ShopService) Browse(ctx context.Context, q ShopQuery) (*ShopPage, error) {
	sortKey, err := s.pipeline.ParseSortKey(q.Sort)
	if err != nil {
		return nil, invalid(err)
	}

	var (
		categories []domain.Category
		products   []domain.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if categories, err = s.categories.ListCategories(gctx); err != nil {
			return upstream("list categories", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		params := store.ListProductsParams{}
		if q.Search != "" {
			params.SearchQuery = &q.Search
		}
		if products, err = s.products.ListProducts(gctx, params); err != nil {
			return upstream("list products", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("shop snapshot fetch failed", zap.Error(err))
		return nil, err
	}

	state := listing.NewViewState(s.pipeline, products)
	state.SetCategory(listing.Select(q.Category))
	state.SetSearch(q.Search)
	state.SetSortKey(sortKey)
	state.SetPageIndex(q.Page)
	view := state.View()

	items := s.resolveImages(ctx, view.Items)
	s.logger.Debug("shop page derived",
		zap.String("category", q.Category),
		zap.String("sort", string(sortKey)),
		zap.Int("page", view.Page.Page),
		zap.Int("matched", view.Matched),
	)
	return &ShopPage{Products: items, Categories: categories, Page: view.Page}, nil
}

// GetProduct returns a single product with its image resolved.
func (s *ShopService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			return nil, errors.Join(ErrNotFound, err)
		}
		s.logger.Error("product fetch failed", zap.Int64("productID", id), zap.Error(err))
		return nil, upstream("get product", err)
	}
	resolved := s.resolveImages(ctx, []domain.Product{*p})
	return &resolved[0], nil
}

// resolveImages rewrites image references on the given window. items is
// already a copy produced by the pipeline, so the snapshot is untouched.
// A reference that fails to resolve is dropped rather than failing the
// page.
func (s *ShopService) resolveImages(ctx context.Context, items []domain.Product) []domain.Product {
	for i := range items {
		if items[i].ImageURL == nil {
			continue
		}
		u, err := s.images.ResolveImageURL(ctx, *items[i].ImageURL)
		if err != nil {
			s.logger.Warn("image reference not resolved", zap.Int64("productID", items[i].ID), zap.Error(err))
			items[i].ImageURL = nil
			continue
		}
		items[i].ImageURL = &u
	}
	return items
}
