package store

import (
	"context"

	"bitary-listing-service/internal/domain"
)

// CategoryStorer defines the database operations for shop categories.
type CategoryStorer interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// ListProductsParams holds the upstream filters applied when fetching a
// product snapshot. Everything else is filtered in memory by the listing
// pipeline.
type ListProductsParams struct {
	SearchQuery *string // Matched against the product name
}

// ProductStorer defines the database operations for products.
type ProductStorer interface {
	ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
}

// ListClinicsParams holds the upstream filters applied when fetching a
// clinic snapshot.
type ListClinicsParams struct {
	ActiveOnly bool
}

// ClinicStorer defines the database operations for clinics.
type ClinicStorer interface {
	ListClinics(ctx context.Context, params ListClinicsParams) ([]domain.Clinic, error)
	GetClinicByID(ctx context.Context, id int64) (*domain.Clinic, error)
}
