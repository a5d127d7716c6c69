package cart

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/shared"
)

// BadgeProjector maintains the header cart badge count. It subscribes to
// cart.changed and re-reads the persisted cart instead of trusting the
// event payload, so it can never display a count the store does not hold.
type BadgeProjector struct {
	carts  cart.Repository
	count  atomic.Int64
	logger *zap.Logger
}

// NewBadgeProjector creates a badge projector primed from the stored cart
func NewBadgeProjector(carts cart.Repository, logger *zap.Logger) *BadgeProjector {
	p := &BadgeProjector{carts: carts, logger: logger}
	if c, err := carts.Load(context.Background()); err == nil {
		p.count.Store(int64(c.ItemCount()))
	}
	return p
}

// Handle processes a single event
func (p *BadgeProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	c, err := p.carts.Load(ctx)
	if err != nil {
		p.logger.Warn("badge projector failed to re-read cart",
			zap.String("event_id", event.EventID().String()),
			zap.Error(err))
		return err
	}
	p.count.Store(int64(c.ItemCount()))
	return nil
}

// EventTypes returns the event types this handler is interested in
func (p *BadgeProjector) EventTypes() []string {
	return []string{cart.EventTypeCartChanged}
}

// Count returns the current badge count
func (p *BadgeProjector) Count() int {
	return int(p.count.Load())
}
