// Package usecase defines the interfaces and implementations for the catalog use cases.
// Use cases orchestrate repositories and the SKU codec: plaintext SKUs enter and leave
// through these interfaces while repositories only ever see the encrypted envelope.
package usecase

import (
	"context"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
)

// ProductRepository defines the interface for Product persistence operations.
type ProductRepository interface {
	// Create inserts the product row and sets ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, product *catalogDomain.Product) error
	// Update writes the row fields and sets UpdatedAt.
	Update(ctx context.Context, product *catalogDomain.Product) error
	// Delete removes the product; media and material links cascade.
	Delete(ctx context.Context, productID int64) error
	// Get loads a product with its category name, material ids and media.
	Get(ctx context.Context, productID int64) (*catalogDomain.Product, error)
	// List loads one page ordered by id descending.
	List(
		ctx context.Context,
		filter catalogDomain.ProductFilter,
		offset, limit int,
	) ([]*catalogDomain.Product, error)
	// Count returns the number of products matching filter.
	Count(ctx context.Context, filter catalogDomain.ProductFilter) (int, error)
	// ListSKUs returns the encrypted SKU of every product.
	ListSKUs(ctx context.Context) ([]catalogDomain.SKURecord, error)
	// ReplaceMaterials sets the product's materials.
	ReplaceMaterials(ctx context.Context, productID int64, materialIDs []int64) error
	// ReplaceMedia sets the product's media URLs.
	ReplaceMedia(ctx context.Context, productID int64, urls []string) error
}

// StatisticsRepository defines the catalog-wide aggregate queries.
type StatisticsRepository interface {
	CategoryHighestPrices(ctx context.Context) ([]catalogDomain.CategoryPrice, error)
	PriceRangeCounts(ctx context.Context) ([]catalogDomain.PriceRangeCount, error)
	ProductsWithoutMedia(ctx context.Context) ([]catalogDomain.ProductSummary, error)
}

// CategoryRepository defines the interface for Category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *catalogDomain.Category) error
	List(ctx context.Context) ([]*catalogDomain.Category, error)
	Exists(ctx context.Context, categoryID int64) (bool, error)
}

// MaterialRepository defines the interface for Material persistence operations.
type MaterialRepository interface {
	Create(ctx context.Context, material *catalogDomain.Material) error
	List(ctx context.Context) ([]*catalogDomain.Material, error)
	// CountExisting returns how many of the distinct ids exist.
	CountExisting(ctx context.Context, materialIDs []int64) (int, error)
}

// ProductUseCase defines the product business logic.
type ProductUseCase interface {
	Create(ctx context.Context, input *catalogDomain.CreateProductInput) (*catalogDomain.Product, error)
	Get(ctx context.Context, productID int64) (*catalogDomain.Product, error)
	List(
		ctx context.Context,
		filter catalogDomain.ProductFilter,
		page, limit int,
	) (*catalogDomain.ProductPage, error)
	Update(
		ctx context.Context,
		productID int64,
		input *catalogDomain.UpdateProductInput,
	) (*catalogDomain.Product, error)
	Delete(ctx context.Context, productID int64) error
	Statistics(ctx context.Context) (*catalogDomain.Statistics, error)
}

// CategoryUseCase defines the category business logic.
type CategoryUseCase interface {
	List(ctx context.Context) ([]*catalogDomain.Category, error)
}

// MaterialUseCase defines the material business logic.
type MaterialUseCase interface {
	List(ctx context.Context) ([]*catalogDomain.Material, error)
}
