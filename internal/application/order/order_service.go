package order

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/order"
	"github.com/shop/storefront/internal/domain/shared"
)

// OrderService serves the order list and tracking views. The server owns
// every order; this service mirrors what it last saw into a local cache so
// history stays browsable through outages, and supports exactly one
// optimistic local write: cancellation while the server is unreachable.
type OrderService struct {
	remote    order.Repository
	cache     order.Cache
	publisher shared.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(
	remote order.Repository,
	cache order.Cache,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		remote:    remote,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns all orders. The server's answer is authoritative and
// refreshes the cache, except for orders cancelled locally and not yet
// reconciled, whose local copy is overlaid until the server catches up.
// When the server is unreachable the cached copies are served instead.
func (s *OrderService) List(ctx context.Context) ([]SummaryView, error) {
	remote, err := s.remote.List(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNetwork) {
			return nil, err
		}
		s.logger.Warn("order list unavailable, serving cached copies", zap.Error(err))
		cached, cerr := s.cache.List(ctx)
		if cerr != nil {
			return nil, err
		}
		return toSummaries(cached), nil
	}

	pending, err := s.cache.PendingSync(ctx)
	if err != nil {
		s.logger.Warn("failed to read pending-sync orders", zap.Error(err))
		pending = nil
	}
	overlay := make(map[string]order.Order, len(pending))
	for _, o := range pending {
		overlay[o.ID] = o
	}

	for idx, o := range remote {
		if local, ok := overlay[o.ID]; ok {
			remote[idx] = local
			continue
		}
		if err := s.cache.Put(ctx, o); err != nil {
			s.logger.Warn("failed to cache order", zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	return toSummaries(remote), nil
}

// Get returns the tracking view for one order
func (s *OrderService) Get(ctx context.Context, id string) (*DetailView, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := ToDetailView(*o)
	return &view, nil
}

// Cancel cancels an order. The server is asked first; when it is
// unreachable the cached copy is cancelled optimistically and flagged for a
// later reconciliation pass. Terminal orders cannot be cancelled either way.
func (s *OrderService) Cancel(ctx context.Context, id string) (*DetailView, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is already in a terminal state")
	}

	if err := s.remote.Cancel(ctx, id); err != nil {
		if !errors.Is(err, shared.ErrNetwork) {
			return nil, err
		}
		s.logger.Warn("server unreachable, cancelling locally",
			zap.String("order_id", id), zap.Error(err))
		if err := o.CancelLocally(s.now()); err != nil {
			return nil, err
		}
	} else {
		o.Status = order.StatusCancelled
		o.PendingSync = false
		for idx := range o.History {
			o.History[idx].IsCurrent = false
		}
		o.History = append(o.History, order.HistoryEntry{
			StatusLabel: "Order Cancelled",
			Timestamp:   s.now(),
			IconKind:    order.IconCancelled,
			IsCurrent:   true,
		})
	}

	if err := s.cache.Put(ctx, *o); err != nil {
		return nil, err
	}
	s.notify(ctx, *o)

	view := ToDetailView(*o)
	return &view, nil
}

// UpdateStatus requests a server-side status transition, after checking it
// against the mirrored state machine
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status order.Status) (*DetailView, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown order status")
	}
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(status) {
		return nil, shared.NewDomainError("INVALID_STATE", "Status transition not allowed")
	}

	updated, err := s.remote.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, *updated); err != nil {
		s.logger.Warn("failed to cache order", zap.String("order_id", id), zap.Error(err))
	}
	s.notify(ctx, *updated)

	view := ToDetailView(*updated)
	return &view, nil
}

// Reconcile replays locally cancelled orders against the server. Orders the
// server accepts lose their pending flag; the rest stay flagged for the
// next pass. Returns the number reconciled.
func (s *OrderService) Reconcile(ctx context.Context) (int, error) {
	pending, err := s.cache.PendingSync(ctx)
	if err != nil {
		return 0, err
	}

	reconciled := 0
	for _, o := range pending {
		if err := s.remote.Cancel(ctx, o.ID); err != nil {
			s.logger.Warn("reconciliation attempt failed",
				zap.String("order_id", o.ID), zap.Error(err))
			continue
		}
		o.PendingSync = false
		if err := s.cache.Put(ctx, o); err != nil {
			s.logger.Warn("failed to cache reconciled order",
				zap.String("order_id", o.ID), zap.Error(err))
			continue
		}
		s.notify(ctx, o)
		reconciled++
	}
	return reconciled, nil
}

// load fetches one order, preferring an unreconciled local copy, then the
// server, then the cache when the server is unreachable
func (s *OrderService) load(ctx context.Context, id string) (*order.Order, error) {
	if cached, err := s.cache.Get(ctx, id); err == nil && cached.PendingSync {
		return cached, nil
	}

	o, err := s.remote.GetByID(ctx, id)
	if err == nil {
		return o, nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	if !errors.Is(err, shared.ErrNetwork) {
		return nil, err
	}

	cached, cerr := s.cache.Get(ctx, id)
	if cerr != nil {
		return nil, err
	}
	return cached, nil
}

func (s *OrderService) notify(ctx context.Context, o order.Order) {
	if err := s.publisher.Publish(ctx, order.NewChangedEvent(o)); err != nil {
		s.logger.Warn("failed to publish order.changed", zap.Error(err))
	}
}

func toSummaries(orders []order.Order) []SummaryView {
	views := make([]SummaryView, 0, len(orders))
	for _, o := range orders {
		views = append(views, ToSummaryView(o))
	}
	return views
}
