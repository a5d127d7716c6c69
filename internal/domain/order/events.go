package order

import (
	"github.com/shop/storefront/internal/domain/shared"
)

// EventTypeOrderChanged is published after an order's cached copy changed,
// including optimistic local cancellations
const EventTypeOrderChanged = "order.changed"

// AggregateTypeOrder identifies the order aggregate in events
const AggregateTypeOrder = "order"

// ChangedEvent notifies subscribers that a cached order changed
type ChangedEvent struct {
	shared.BaseDomainEvent
	Status      Status `json:"status"`
	PendingSync bool   `json:"pending_sync"`
}

// NewChangedEvent creates an order-changed event for the given order state
func NewChangedEvent(o Order) *ChangedEvent {
	return &ChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderChanged, AggregateTypeOrder, o.ID),
		Status:          o.Status,
		PendingSync:     o.PendingSync,
	}
}
