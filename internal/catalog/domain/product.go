// Package domain defines the catalog models: products, their categories,
// materials and media. A product's SKU is held in plaintext only in memory;
// the store sees EncryptedSKU exclusively.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the lifecycle status of a product.
type ProductStatus string

const (
	// StatusActive marks a product visible in the catalog. It is the default.
	StatusActive ProductStatus = "active"
	// StatusInactive marks a product hidden from the catalog.
	StatusInactive ProductStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s ProductStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Product represents a catalog entry.
type Product struct {
	// ID is the auto-increment identifier.
	ID int64
	// SKU is the plaintext business identifier; never persisted.
	SKU string
	// EncryptedSKU is the codec envelope stored in place of SKU.
	EncryptedSKU string
	// Name is the display name.
	Name string
	// CategoryID references the owning category.
	CategoryID int64
	// CategoryName is populated on reads.
	CategoryName string
	// MaterialIDs lists the materials the product is made of.
	MaterialIDs []int64
	// Price is a non-negative DECIMAL(10,2) amount.
	Price decimal.Decimal
	// Status is active or inactive.
	Status ProductStatus
	// Media lists attached media ordered by id.
	Media []Media
	// MediaCount equals len(Media) on reads.
	MediaCount int
	// CreatedAt is the UTC creation timestamp.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last update.
	UpdatedAt time.Time
}

// Media is an image or document URL attached to a product.
type Media struct {
	ID        int64
	ProductID int64
	URL       string
	CreatedAt time.Time
}

// Category groups products.
type Category struct {
	ID   int64
	Name string
}

// Material is something a product is made of.
type Material struct {
	ID   int64
	Name string
}

// SKURecord pairs a product id with its stored SKU envelope. It is the row
// shape scanned by the decrypt-and-compare uniqueness check and SKU filter.
type SKURecord struct {
	ProductID    int64
	EncryptedSKU string
}
