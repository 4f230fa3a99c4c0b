package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bitary-listing-service/internal/domain"
	"bitary-listing-service/internal/store"
)

type MockCategoryStorer struct {
	mock.Mock
}

func (m *MockCategoryStorer) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	var categories []domain.Category
	if arg0 := args.Get(0); arg0 != nil {
		categories = arg0.([]domain.Category)
	}
	return categories, args.Error(1)
}

type MockProductStorer struct {
	mock.Mock
}

func (m *MockProductStorer) ListProducts(ctx context.Context, params store.ListProductsParams) ([]domain.Product, error) {
	args := m.Called(ctx, params)
	var products []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductStorer) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockClinicStorer struct {
	mock.Mock
}

func (m *MockClinicStorer) ListClinics(ctx context.Context, params store.ListClinicsParams) ([]domain.Clinic, error) {
	args := m.Called(ctx, params)
	var clinics []domain.Clinic
	if arg0 := args.Get(0); arg0 != nil {
		clinics = arg0.([]domain.Clinic)
	}
	return clinics, args.Error(1)
}

func (m *MockClinicStorer) GetClinicByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}

type MockImageResolver struct {
	mock.Mock
}

func (m *MockImageResolver) ResolveImageURL(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

func PtrTo[T any](v T) *T {
	return &v
}
