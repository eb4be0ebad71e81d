package usecase

import (
	"context"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
)

type categoryUseCase struct {
	categoryRepo CategoryRepository
}

// List returns every category ordered by name.
func (c *categoryUseCase) List(ctx context.Context) ([]*catalogDomain.Category, error) {
	return c.categoryRepo.List(ctx)
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository) CategoryUseCase {
	return &categoryUseCase{categoryRepo: categoryRepo}
}

type materialUseCase struct {
	materialRepo MaterialRepository
}

// List returns every material ordered by name.
func (m *materialUseCase) List(ctx context.Context) ([]*catalogDomain.Material, error) {
	return m.materialRepo.List(ctx)
}

// NewMaterialUseCase creates a new MaterialUseCase.
func NewMaterialUseCase(materialRepo MaterialRepository) MaterialUseCase {
	return &materialUseCase{materialRepo: materialRepo}
}
