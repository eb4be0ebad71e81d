package domain

import "github.com/shopspring/decimal"

// Price range bucket labels, bounded by price <= 500 and price <= 1000.
const (
	PriceRangeLow    = "0-500"
	PriceRangeMedium = "501-1000"
	PriceRangeHigh   = "1000+"
)

// CategoryPrice is the highest product price within a category.
type CategoryPrice struct {
	CategoryID   int64
	CategoryName string
	HighestPrice decimal.Decimal
}

// PriceRangeCount is the number of products in a price bucket.
type PriceRangeCount struct {
	Range string
	Count int
}

// ProductSummary identifies a product in statistics listings.
type ProductSummary struct {
	ID           int64
	SKU          string
	EncryptedSKU string
	Name         string
}

// Statistics aggregates catalog-wide figures.
type Statistics struct {
	CategoryHighestPrice []CategoryPrice
	PriceRangeCount      []PriceRangeCount
	ProductsWithNoMedia  []ProductSummary
}
