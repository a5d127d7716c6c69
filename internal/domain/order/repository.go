package order

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreateRequest is the payload for creating an order server-side
type CreateRequest struct {
	Items            []Item          `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Tax              decimal.Decimal `json:"tax"`
	DeliveryFee      decimal.Decimal `json:"delivery_fee"`
	Total            decimal.Decimal `json:"total"`
	Shipping         ShippingInfo    `json:"shipping_address"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference,omitempty"`
}

// CreateResult identifies the order the server created
type CreateResult struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

// Repository is the port to the remote order API. Implementations convert
// transport failures into domain error kinds before returning; raw
// transport errors never cross this boundary.
type Repository interface {
	// List returns all orders for the current user
	List(ctx context.Context) ([]Order, error)
	// GetByID returns shared.ErrNotFound (wrapped) when the order does not exist
	GetByID(ctx context.Context, id string) (*Order, error)
	// Create creates an order and returns its server identity
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
	// UpdateStatus requests a server-side status transition
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	// Cancel requests server-side cancellation
	Cancel(ctx context.Context, id string) error
	// VerifyPayment confirms a gateway capture against the server; a non-2xx
	// response surfaces as shared.ErrPaymentReconciliation
	VerifyPayment(ctx context.Context, reference string) (*CreateResult, error)
}
