// Package dto provides data transfer objects for catalog HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	customValidation "github.com/allisson/catalog/internal/validation"
)

const (
	maxNameLength = 255
	maxSKULength  = 64
)

var statusValues = []any{string(catalogDomain.StatusActive), string(catalogDomain.StatusInactive)}

// CreateProductRequest is the body of POST /api/products.
type CreateProductRequest struct {
	SKU         string           `json:"SKU"`
	ProductName string           `json:"product_name"`
	CategoryID  int64            `json:"category_id"`
	MaterialIDs IDList           `json:"material_ids"`
	Price       *decimal.Decimal `json:"price"`
	Status      string           `json:"status"`
	Media       []string         `json:"media"`
}

// Validate checks the create request.
func (r *CreateProductRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SKU,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			customValidation.Printable,
			validation.RuneLength(1, maxSKULength),
		),
		validation.Field(&r.ProductName,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, maxNameLength),
		),
		validation.Field(&r.CategoryID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.MaterialIDs,
			validation.Required,
			validation.Each(validation.Required, validation.Min(int64(1))),
		),
		validation.Field(&r.Price, validation.Required, customValidation.Price),
		validation.Field(&r.Status, validation.In(statusValues...)),
		validation.Field(&r.Media, validation.Each(validation.Required, customValidation.HTTPURL)),
	)
}

// ToInput converts a validated request into use case input.
func (r *CreateProductRequest) ToInput() *catalogDomain.CreateProductInput {
	input := &catalogDomain.CreateProductInput{
		SKU:         r.SKU,
		Name:        r.ProductName,
		CategoryID:  r.CategoryID,
		MaterialIDs: []int64(r.MaterialIDs),
		Status:      catalogDomain.ProductStatus(r.Status),
		Media:       r.Media,
	}
	if r.Price != nil {
		input.Price = *r.Price
	}
	return input
}

// UpdateProductRequest is the body of PUT /api/products/:id. Omitted fields are
// left unchanged; an empty media array removes all media.
type UpdateProductRequest struct {
	SKU         *string          `json:"SKU"`
	ProductName *string          `json:"product_name"`
	CategoryID  *int64           `json:"category_id"`
	MaterialIDs IDList           `json:"material_ids"`
	Price       *decimal.Decimal `json:"price"`
	Status      *string          `json:"status"`
	Media       []string         `json:"media"`
}

// Validate applies the create rules to every provided field.
func (r *UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SKU,
			validation.NilOrNotEmpty,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			customValidation.Printable,
			validation.RuneLength(1, maxSKULength),
		),
		validation.Field(&r.ProductName,
			validation.NilOrNotEmpty,
			customValidation.NotBlank,
			validation.RuneLength(1, maxNameLength),
		),
		validation.Field(&r.CategoryID, validation.NilOrNotEmpty, validation.Min(int64(1))),
		validation.Field(&r.MaterialIDs,
			validation.NilOrNotEmpty,
			validation.Each(validation.Required, validation.Min(int64(1))),
		),
		validation.Field(&r.Price, customValidation.Price),
		validation.Field(&r.Status, validation.NilOrNotEmpty, validation.In(statusValues...)),
		validation.Field(&r.Media, validation.Each(validation.Required, customValidation.HTTPURL)),
	)
}

// ToInput converts a validated request into use case input.
func (r *UpdateProductRequest) ToInput() *catalogDomain.UpdateProductInput {
	input := &catalogDomain.UpdateProductInput{
		SKU:         r.SKU,
		Name:        r.ProductName,
		CategoryID:  r.CategoryID,
		MaterialIDs: []int64(r.MaterialIDs),
		Price:       r.Price,
		Media:       r.Media,
	}
	if r.Status != nil {
		status := catalogDomain.ProductStatus(*r.Status)
		input.Status = &status
	}
	return input
}
