package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
)

// MediaResponse represents an attached media URL.
type MediaResponse struct {
	MediaID   int64     `json:"media_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse represents a product in API responses. SKU is plaintext.
type ProductResponse struct {
	ProductID    int64           `json:"product_id"`
	SKU          string          `json:"SKU"`
	ProductName  string          `json:"product_name"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	MaterialIDs  []int64         `json:"material_ids"`
	Price        json.Number     `json:"price"`
	Status       string          `json:"status"`
	Media        []MediaResponse `json:"media"`
	MediaCount   int             `json:"media_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreatedProductResponse is returned by POST /api/products.
type CreatedProductResponse struct {
	ProductID int64 `json:"product_id"`
}

// PaginationResponse describes a page of a listing.
type PaginationResponse struct {
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// ListProductsResponse is returned by GET /api/products.
type ListProductsResponse struct {
	Products   []ProductResponse  `json:"products"`
	Pagination PaginationResponse `json:"pagination"`
}

// CategoryPriceResponse is the highest price within a category.
type CategoryPriceResponse struct {
	CategoryID   int64       `json:"category_id"`
	CategoryName string      `json:"category_name"`
	HighestPrice json.Number `json:"highest_price"`
}

// PriceRangeResponse is the product count of one price bucket.
type PriceRangeResponse struct {
	Range string `json:"price_range"`
	Count int    `json:"product_count"`
}

// ProductSummaryResponse identifies a product in statistics.
type ProductSummaryResponse struct {
	ProductID   int64  `json:"product_id"`
	SKU         string `json:"SKU"`
	ProductName string `json:"product_name"`
}

// StatisticsResponse is returned by GET /api/products/stats/all.
type StatisticsResponse struct {
	CategoryHighestPrice []CategoryPriceResponse  `json:"categoryHighestPrice"`
	PriceRangeCount      []PriceRangeResponse     `json:"priceRangeCount"`
	ProductsWithNoMedia  []ProductSummaryResponse `json:"productsWithNoMedia"`
}

// CategoryResponse represents a category.
type CategoryResponse struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
}

// MaterialResponse represents a material.
type MaterialResponse struct {
	MaterialID   int64  `json:"material_id"`
	MaterialName string `json:"material_name"`
}

func priceNumber(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// MapProductToResponse converts a domain product to an API response.
func MapProductToResponse(product *catalogDomain.Product) ProductResponse {
	materialIDs := product.MaterialIDs
	if materialIDs == nil {
		materialIDs = []int64{}
	}

	media := make([]MediaResponse, 0, len(product.Media))
	for _, m := range product.Media {
		media = append(media, MediaResponse{MediaID: m.ID, URL: m.URL, CreatedAt: m.CreatedAt})
	}

	return ProductResponse{
		ProductID:    product.ID,
		SKU:          product.SKU,
		ProductName:  product.Name,
		CategoryID:   product.CategoryID,
		CategoryName: product.CategoryName,
		MaterialIDs:  materialIDs,
		Price:        priceNumber(product.Price),
		Status:       string(product.Status),
		Media:        media,
		MediaCount:   len(media),
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}

// MapProductPageToResponse converts a product page to an API response.
func MapProductPageToResponse(page *catalogDomain.ProductPage) ListProductsResponse {
	products := make([]ProductResponse, 0, len(page.Products))
	for _, product := range page.Products {
		products = append(products, MapProductToResponse(product))
	}

	return ListProductsResponse{
		Products: products,
		Pagination: PaginationResponse{
			TotalItems:   page.TotalItems,
			TotalPages:   page.TotalPages,
			CurrentPage:  page.CurrentPage,
			ItemsPerPage: page.PageSize,
		},
	}
}

// MapStatisticsToResponse converts catalog statistics to an API response.
func MapStatisticsToResponse(stats *catalogDomain.Statistics) StatisticsResponse {
	response := StatisticsResponse{
		CategoryHighestPrice: make([]CategoryPriceResponse, 0, len(stats.CategoryHighestPrice)),
		PriceRangeCount:      make([]PriceRangeResponse, 0, len(stats.PriceRangeCount)),
		ProductsWithNoMedia:  make([]ProductSummaryResponse, 0, len(stats.ProductsWithNoMedia)),
	}

	for _, c := range stats.CategoryHighestPrice {
		response.CategoryHighestPrice = append(response.CategoryHighestPrice, CategoryPriceResponse{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			HighestPrice: priceNumber(c.HighestPrice),
		})
	}
	for _, r := range stats.PriceRangeCount {
		response.PriceRangeCount = append(response.PriceRangeCount, PriceRangeResponse{Range: r.Range, Count: r.Count})
	}
	for _, p := range stats.ProductsWithNoMedia {
		response.ProductsWithNoMedia = append(response.ProductsWithNoMedia, ProductSummaryResponse{
			ProductID:   p.ID,
			SKU:         p.SKU,
			ProductName: p.Name,
		})
	}
	return response
}

// MapCategoriesToResponse converts categories to API responses.
func MapCategoriesToResponse(categories []*catalogDomain.Category) []CategoryResponse {
	response := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, CategoryResponse{CategoryID: c.ID, CategoryName: c.Name})
	}
	return response
}

// MapMaterialsToResponse converts materials to API responses.
func MapMaterialsToResponse(materials []*catalogDomain.Material) []MaterialResponse {
	response := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		response = append(response, MaterialResponse{MaterialID: m.ID, MaterialName: m.Name})
	}
	return response
}
