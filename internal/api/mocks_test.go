package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bitary-listing-service/internal/domain"
	"bitary-listing-service/internal/service"
)

// MockShopBrowser is a mock implementation of ShopBrowser
type MockShopBrowser struct {
	mock.Mock
}

func (m *MockShopBrowser) Browse(ctx context.Context, q service.ShopQuery) (*service.ShopPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ShopPage), args.Error(1)
}

func (m *MockShopBrowser) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// MockClinicBrowser is a mock implementation of ClinicBrowser
type MockClinicBrowser struct {
	mock.Mock
}

func (m *MockClinicBrowser) Browse(ctx context.Context, q service.ClinicQuery) (*service.ClinicPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClinicPage), args.Error(1)
}

func (m *MockClinicBrowser) GetClinic(ctx context.Context, id int64) (*domain.Clinic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}
