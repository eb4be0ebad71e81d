package domain

import (
	"github.com/allisson/catalog/internal/errors"
)

// Catalog error definitions.
var (
	// ErrProductNotFound indicates the product does not exist.
	ErrProductNotFound = errors.Wrap(errors.ErrNotFound, "Product not found")

	// ErrDuplicateSKU indicates another product already has the same SKU
	// (exact, case-sensitive comparison of decrypted values). It is a
	// user-facing validation error.
	ErrDuplicateSKU = errors.Wrap(errors.ErrInvalidInput, "Duplicate SKU is not allowed")

	// ErrCategoryNotFound indicates the referenced category does not exist.
	ErrCategoryNotFound = errors.Wrap(errors.ErrInvalidInput, "category does not exist")

	// ErrMaterialNotFound indicates at least one referenced material does not exist.
	ErrMaterialNotFound = errors.Wrap(errors.ErrInvalidInput, "material does not exist")
)
