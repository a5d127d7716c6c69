package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/shop/storefront/internal/application/order"
	"github.com/shop/storefront/internal/domain/order"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// UpdateStatusRequest requests a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,order_status"`
}

// ReconcileResponse reports how many pending local cancellations were replayed
type ReconcileResponse struct {
	Reconciled int `json:"reconciled"`
}

// List returns all orders, overlaying local pending cancellations
func (h *OrderHandler) List(c *gin.Context) {
	views, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithCount(c, views, len(views))
}

// Get returns one order with its projected status view
func (h *OrderHandler) Get(c *gin.Context) {
	view, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Cancel cancels an order, falling back to an optimistic local cancellation
// when the server is unreachable
func (h *OrderHandler) Cancel(c *gin.Context) {
	view, err := h.orderService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateStatus requests a server-side status transition
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	view, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Reconcile replays pending local cancellations against the server
func (h *OrderHandler) Reconcile(c *gin.Context) {
	count, err := h.orderService.Reconcile(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ReconcileResponse{Reconciled: count})
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.POST("/reconcile", h.Reconcile)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/cancel", h.Cancel)
		orders.PUT("/:id/status", h.UpdateStatus)
	}
}
