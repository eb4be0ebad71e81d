package domain

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	// SKU is a case-insensitive substring matched against decrypted SKUs.
	SKU string
	// Name is a case-insensitive substring matched against product names.
	Name string
	// CategoryID restricts to one category.
	CategoryID int64
	// MaterialID restricts to products made of this material.
	MaterialID int64
	// Status restricts to one status.
	Status ProductStatus
	// ProductIDs restricts to these ids. Set by the use case from the SKU
	// scan, never by callers; a non-nil empty slice matches nothing.
	ProductIDs []int64
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products    []*Product
	TotalItems  int
	TotalPages  int
	CurrentPage int
	PageSize    int
}

// NewProductPage computes page totals for a listing.
func NewProductPage(products []*Product, totalItems, page, limit int) *ProductPage {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	if products == nil {
		products = []*Product{}
	}
	return &ProductPage{
		Products:    products,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    limit,
	}
}
