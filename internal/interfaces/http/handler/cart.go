package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/shop/storefront/internal/application/cart"
	"github.com/shop/storefront/internal/domain/cart"
)

// CartHandler handles cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
	badge       *cartapp.BadgeProjector
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService, badge *cartapp.BadgeProjector) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		badge:       badge,
	}
}

// AddItemRequest adds one unit of a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// SetQuantityRequest sets the absolute quantity of a cart line.
// A quantity below one removes the line.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// BadgeResponse is the live cart item count
type BadgeResponse struct {
	Count int `json:"count"`
}

// deliveryMethod reads the optional delivery_method query parameter.
// Unknown values price as standard delivery downstream.
func deliveryMethod(c *gin.Context) cart.DeliveryMethod {
	return cart.DeliveryMethod(c.DefaultQuery("delivery_method", cart.DeliveryStandard.String()))
}

// View returns the cart with totals priced under the requested delivery method
func (h *CartHandler) View(c *gin.Context) {
	view, err := h.cartService.View(c.Request.Context(), deliveryMethod(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Badge returns the live item count for the cart badge
func (h *CartHandler) Badge(c *gin.Context) {
	h.Success(c, BadgeResponse{Count: h.badge.Count()})
}

// AddItem adds one unit of a product, snapshotting it on first add
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.cartService.AddItem(c.Request.Context(), req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SetQuantity sets the absolute quantity of a line
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.cartService.SetQuantity(c.Request.Context(), c.Param("productId"), *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// RemoveItem removes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.cartService.RemoveItem(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/cart")
	{
		carts.GET("", h.View)
		carts.GET("/badge", h.Badge)
		carts.POST("/items", h.AddItem)
		carts.PUT("/items/:productId", h.SetQuantity)
		carts.DELETE("/items/:productId", h.RemoveItem)
		carts.DELETE("", h.Clear)
	}
}
