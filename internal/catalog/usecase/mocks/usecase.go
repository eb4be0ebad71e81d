// Package mocks provides mock implementations of the catalog use cases for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
)

// MockProductUseCase is a mock implementation of ProductUseCase.
type MockProductUseCase struct {
	mock.Mock
}

// Create mocks the Create method of ProductUseCase.
func (m *MockProductUseCase) Create(
	ctx context.Context,
	input *catalogDomain.CreateProductInput,
) (*catalogDomain.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.Product), args.Error(1)
}

// Get mocks the Get method of ProductUseCase.
func (m *MockProductUseCase) Get(ctx context.Context, productID int64) (*catalogDomain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.Product), args.Error(1)
}

// List mocks the List method of ProductUseCase.
func (m *MockProductUseCase) List(
	ctx context.Context,
	filter catalogDomain.ProductFilter,
	page, limit int,
) (*catalogDomain.ProductPage, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.ProductPage), args.Error(1)
}

// Update mocks the Update method of ProductUseCase.
func (m *MockProductUseCase) Update(
	ctx context.Context,
	productID int64,
	input *catalogDomain.UpdateProductInput,
) (*catalogDomain.Product, error) {
	args := m.Called(ctx, productID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.Product), args.Error(1)
}

// Delete mocks the Delete method of ProductUseCase.
func (m *MockProductUseCase) Delete(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// Statistics mocks the Statistics method of ProductUseCase.
func (m *MockProductUseCase) Statistics(ctx context.Context) (*catalogDomain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.Statistics), args.Error(1)
}

// MockCategoryUseCase is a mock implementation of CategoryUseCase.
type MockCategoryUseCase struct {
	mock.Mock
}

// List mocks the List method of CategoryUseCase.
func (m *MockCategoryUseCase) List(ctx context.Context) ([]*catalogDomain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalogDomain.Category), args.Error(1)
}

// MockMaterialUseCase is a mock implementation of MaterialUseCase.
type MockMaterialUseCase struct {
	mock.Mock
}

// List mocks the List method of MaterialUseCase.
func (m *MockMaterialUseCase) List(ctx context.Context) ([]*catalogDomain.Material, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalogDomain.Material), args.Error(1)
}
