package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/allisson/catalog/internal/catalog/http/dto"
	catalogUseCase "github.com/allisson/catalog/internal/catalog/usecase"
	"github.com/allisson/catalog/internal/httputil"
)

// ReferenceHandler serves the category and material lists used by product forms.
type ReferenceHandler struct {
	categoryUseCase catalogUseCase.CategoryUseCase
	materialUseCase catalogUseCase.MaterialUseCase
	logger          *slog.Logger
}

// NewReferenceHandler creates a new reference data handler.
func NewReferenceHandler(
	categoryUseCase catalogUseCase.CategoryUseCase,
	materialUseCase catalogUseCase.MaterialUseCase,
	logger *slog.Logger,
) *ReferenceHandler {
	return &ReferenceHandler{
		categoryUseCase: categoryUseCase,
		materialUseCase: materialUseCase,
		logger:          logger,
	}
}

// ListCategoriesHandler lists every category.
// GET /api/categories
func (h *ReferenceHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.categoryUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	httputil.OK(c, dto.MapCategoriesToResponse(categories))
}

// ListMaterialsHandler lists every material.
// GET /api/materials
func (h *ReferenceHandler) ListMaterialsHandler(c *gin.Context) {
	materials, err := h.materialUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	httputil.OK(c, dto.MapMaterialsToResponse(materials))
}
