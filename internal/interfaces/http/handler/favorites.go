package handler

import (
	"github.com/gin-gonic/gin"

	favoritesapp "github.com/shop/storefront/internal/application/favorites"
)

// FavoritesHandler handles favorites API endpoints
type FavoritesHandler struct {
	BaseHandler
	favoritesService *favoritesapp.FavoritesService
}

// NewFavoritesHandler creates a new FavoritesHandler
func NewFavoritesHandler(favoritesService *favoritesapp.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

// AddFavoriteRequest marks a product as a favorite
type AddFavoriteRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// List returns the favorite products
func (h *FavoritesHandler) List(c *gin.Context) {
	views, err := h.favoritesService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithCount(c, views, len(views))
}

// Add marks a product as a favorite
func (h *FavoritesHandler) Add(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.favoritesService.Add(c.Request.Context(), req.ProductID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Remove removes a product from the favorites
func (h *FavoritesHandler) Remove(c *gin.Context) {
	if err := h.favoritesService.Remove(c.Request.Context(), c.Param("productId")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all favorites routes
func (h *FavoritesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("", h.Add)
		favorites.DELETE("/:productId", h.Remove)
	}
}
