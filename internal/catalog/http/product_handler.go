// Package http provides the gin handlers of the catalog REST API.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	"github.com/allisson/catalog/internal/catalog/http/dto"
	catalogUseCase "github.com/allisson/catalog/internal/catalog/usecase"
	"github.com/allisson/catalog/internal/httputil"
	customValidation "github.com/allisson/catalog/internal/validation"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	productUseCase catalogUseCase.ProductUseCase
	logger         *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productUseCase catalogUseCase.ProductUseCase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		logger:         logger,
	}
}

// ListHandler lists products with pagination and filters.
// GET /api/products?page=&limit=&sku=&product_name=&category_id=&material_id=&status=
func (h *ProductHandler) ListHandler(c *gin.Context) {
	page, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	result, err := h.productUseCase.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.OK(c, dto.MapProductPageToResponse(result))
}

// GetHandler retrieves a product by id.
// GET /api/products/:id
func (h *ProductHandler) GetHandler(c *gin.Context) {
	productID, err := parseProductID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	product, err := h.productUseCase.Get(c.Request.Context(), productID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.OK(c, dto.MapProductToResponse(product))
}

// CreateHandler creates a product.
// POST /api/products - returns 201 with the new product id.
func (h *ProductHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	product, err := h.productUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.Created(c, "Product created successfully", dto.CreatedProductResponse{ProductID: product.ID})
}

// UpdateHandler applies a partial update to a product.
// PUT /api/products/:id
func (h *ProductHandler) UpdateHandler(c *gin.Context) {
	productID, err := parseProductID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	product, err := h.productUseCase.Update(c.Request.Context(), productID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    dto.MapProductToResponse(product),
	})
}

// DeleteHandler removes a product.
// DELETE /api/products/:id
func (h *ProductHandler) DeleteHandler(c *gin.Context) {
	productID, err := parseProductID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.productUseCase.Delete(c.Request.Context(), productID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.Message(c, "Product deleted successfully")
}

// StatisticsHandler returns catalog-wide statistics.
// GET /api/products/stats/all
func (h *ProductHandler) StatisticsHandler(c *gin.Context) {
	stats, err := h.productUseCase.Statistics(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.OK(c, dto.MapStatisticsToResponse(stats))
}

func parseProductID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid product id: must be a positive integer")
	}
	return id, nil
}

func parseFilter(c *gin.Context) (catalogDomain.ProductFilter, error) {
	filter := catalogDomain.ProductFilter{
		SKU:  c.Query("sku"),
		Name: c.Query("product_name"),
	}

	var err error
	if filter.CategoryID, err = httputil.ParseOptionalID(c, "category_id"); err != nil {
		return filter, err
	}
	if filter.MaterialID, err = httputil.ParseOptionalID(c, "material_id"); err != nil {
		return filter, err
	}

	if status := c.Query("status"); status != "" {
		filter.Status = catalogDomain.ProductStatus(status)
		if !filter.Status.Valid() {
			return filter, fmt.Errorf("invalid status parameter: must be active or inactive")
		}
	}
	return filter, nil
}
