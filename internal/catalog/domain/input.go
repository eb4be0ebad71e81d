package domain

import "github.com/shopspring/decimal"

// CreateProductInput carries a validated create request. SKU is plaintext.
type CreateProductInput struct {
	SKU         string
	Name        string
	CategoryID  int64
	MaterialIDs []int64
	Price       decimal.Decimal
	Status      ProductStatus
	Media       []string
}

// UpdateProductInput carries a partial update. Nil pointers and nil slices leave
// the field unchanged; a non-nil empty Media slice removes all media.
type UpdateProductInput struct {
	SKU         *string
	Name        *string
	CategoryID  *int64
	MaterialIDs []int64
	Price       *decimal.Decimal
	Status      *ProductStatus
	Media       []string
}
