package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/shop/storefront/internal/application/catalog"
)

// ProductHandler handles product browsing API endpoints
type ProductHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService *catalogapp.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// List returns the catalog, optionally filtered by category
func (h *ProductHandler) List(c *gin.Context) {
	views, err := h.catalogService.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithCount(c, views, len(views))
}

// Get returns one product
func (h *ProductHandler) Get(c *gin.Context) {
	view, err := h.catalogService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Sections returns the landing page shelves: featured, popular and latest
func (h *ProductHandler) Sections(c *gin.Context) {
	view, err := h.catalogService.Sections(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/sections", h.Sections)
		products.GET("/:id", h.Get)
	}
}
