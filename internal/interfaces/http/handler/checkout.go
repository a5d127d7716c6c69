package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/shop/storefront/internal/application/checkout"
	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/checkout"
)

// CheckoutHandler handles checkout API endpoints
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// SetDeliveryMethodRequest switches the delivery method
type SetDeliveryMethodRequest struct {
	Method string `json:"method" binding:"required,delivery_method"`
}

// SetPaymentMethodRequest switches the payment method
type SetPaymentMethodRequest struct {
	Method string `json:"method" binding:"required,payment_method"`
}

// LocationsResponse lists the supported states and their cities
type LocationsResponse struct {
	States []string            `json:"states"`
	Cities map[string][]string `json:"cities"`
}

// Draft returns the current checkout draft
func (h *CheckoutHandler) Draft(c *gin.Context) {
	view, err := h.checkoutService.Draft(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateDraft patches the checkout draft
func (h *CheckoutHandler) UpdateDraft(c *gin.Context) {
	var req checkoutapp.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.checkoutService.UpdateDraft(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SetDeliveryMethod switches the delivery method and returns the recomputed totals
func (h *CheckoutHandler) SetDeliveryMethod(c *gin.Context) {
	var req SetDeliveryMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	totals, err := h.checkoutService.SetDeliveryMethod(c.Request.Context(), cart.DeliveryMethod(req.Method))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, totals)
}

// SetPaymentMethod switches the payment method
func (h *CheckoutHandler) SetPaymentMethod(c *gin.Context) {
	var req SetPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.checkoutService.SetPaymentMethod(c.Request.Context(), checkout.PaymentMethod(req.Method))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Summary returns the review step
func (h *CheckoutHandler) Summary(c *gin.Context) {
	view, err := h.checkoutService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Submit runs the checkout. A dismissed gateway payment is a 200 with
// dismissed set; the session stays in drafting for a retry.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	result, err := h.checkoutService.Submit(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Locations lists the supported shipping states and their cities
func (h *CheckoutHandler) Locations(c *gin.Context) {
	states := checkout.States()
	cities := make(map[string][]string, len(states))
	for _, state := range states {
		cities[state] = checkout.CitiesForState(state)
	}
	h.Success(c, LocationsResponse{States: states, Cities: cities})
}

// RegisterRoutes registers all checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkouts := rg.Group("/checkout")
	{
		checkouts.GET("/draft", h.Draft)
		checkouts.PATCH("/draft", h.UpdateDraft)
		checkouts.PUT("/delivery-method", h.SetDeliveryMethod)
		checkouts.PUT("/payment-method", h.SetPaymentMethod)
		checkouts.GET("/summary", h.Summary)
		checkouts.POST("/submit", h.Submit)
		checkouts.GET("/locations", h.Locations)
	}
}
