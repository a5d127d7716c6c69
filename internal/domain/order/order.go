package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shop/storefront/internal/domain/shared"
)

// Status represents the server-authoritative status of an order.
// Values are case-sensitive and mirror the remote API exactly.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreOrder  Status = "pre-order"
	StatusConfirmed Status = "confirmed"
	StatusTransit   Status = "transit"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPreOrder, StatusConfirmed, StatusTransit,
		StatusShipped, StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for states the order can never leave
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status.
// The server owns transitions; the client mirrors this machine to decide
// which actions to offer and to validate optimistic local updates.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	// Cancellation is reachable from any non-terminal state
	if target == StatusCancelled {
		return true
	}
	switch s {
	case StatusPending, StatusPreOrder:
		return target == StatusConfirmed
	case StatusConfirmed:
		return target == StatusShipped || target == StatusTransit
	case StatusShipped, StatusTransit:
		return target == StatusDelivered || target == StatusCompleted
	}
	return false
}

// Item is a line item snapshot inside an order
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageRef  string          `json:"image_ref,omitempty"`
}

// HistoryEntry is one row of the order's status timeline
type HistoryEntry struct {
	StatusLabel string    `json:"status_label"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	IconKind    string    `json:"icon_kind,omitempty"`
	IsCurrent   bool      `json:"is_current"`
}

// ShippingInfo is the shipping snapshot captured at order creation
type ShippingInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
}

// Order is the read model of a server-owned order. The client only
// displays it, except for the optimistic local cancellation path.
type Order struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	Status      Status          `json:"status"`
	Items       []Item          `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	History     []HistoryEntry  `json:"history,omitempty"`
	Shipping    ShippingInfo    `json:"shipping"`
	CreatedAt   time.Time       `json:"created_at"`

	// PendingSync marks a local record that diverged from the server:
	// the order was cancelled optimistically while the server was
	// unreachable and still awaits reconciliation.
	PendingSync bool `json:"pending_sync,omitempty"`
}

// CancelLocally applies an optimistic local cancellation: flips the status,
// appends an "Order Cancelled" history entry and flags the record for a
// later reconciliation pass. Fails on terminal states.
func (o *Order) CancelLocally(at time.Time) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Order is already in a terminal state")
	}
	for idx := range o.History {
		o.History[idx].IsCurrent = false
	}
	o.History = append(o.History, HistoryEntry{
		StatusLabel: "Order Cancelled",
		Description: "Cancellation requested while the server was unreachable",
		Timestamp:   at,
		IconKind:    IconCancelled,
		IsCurrent:   true,
	})
	o.Status = StatusCancelled
	o.PendingSync = true
	return nil
}
