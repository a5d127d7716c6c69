package cart

import (
	"github.com/shop/storefront/internal/domain/shared"
)

// EventTypeCartChanged is published after every cart mutation has been
// persisted. Subscribers re-read the persisted cart rather than trusting
// the event payload.
const EventTypeCartChanged = "cart.changed"

// AggregateTypeCart identifies the cart aggregate in events
const AggregateTypeCart = "cart"

// ChangedEvent notifies subscribers that the persisted cart changed
type ChangedEvent struct {
	shared.BaseDomainEvent
	ItemCount int `json:"item_count"`
}

// NewChangedEvent creates a cart-changed event for the given cart state
func NewChangedEvent(cartKey string, c Cart) *ChangedEvent {
	return &ChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartChanged, AggregateTypeCart, cartKey),
		ItemCount:       c.ItemCount(),
	}
}
