package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/domain/shared"
)

// CartService owns every cart mutation. Each mutation follows the same
// sequence: load, apply the pure cart operation, persist, then publish a
// cart.changed event. Publication never precedes persistence, so any
// subscriber that re-reads on notification observes the new state.
type CartService struct {
	carts     cart.Repository
	products  catalog.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	carts cart.Repository,
	products catalog.Repository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		carts:     carts,
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// View returns the cart with totals derived under the given delivery method
func (s *CartService) View(ctx context.Context, method cart.DeliveryMethod) (*CartView, error) {
	c, err := s.carts.Load(ctx)
	if err != nil {
		return nil, err
	}
	view := ToCartView(c, method)
	return &view, nil
}

// AddItem adds one unit of the product to the cart. The product is fetched
// from the catalog and snapshotted; if the product is already in the cart
// only its quantity grows and the fresh catalog data is ignored.
func (s *CartService) AddItem(ctx context.Context, productID string) (*CartView, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	c, err := s.carts.Load(ctx)
	if err != nil {
		return nil, err
	}

	c = c.AddOrIncrement(product.Summary())
	if err := s.persistAndNotify(ctx, c); err != nil {
		return nil, err
	}

	view := ToCartView(c, cart.DeliveryStandard)
	return &view, nil
}

// SetQuantity sets the quantity of a cart line. A quantity below one
// removes the line.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) (*CartView, error) {
	c, err := s.carts.Load(ctx)
	if err != nil {
		return nil, err
	}

	c = c.SetQuantity(productID, quantity)
	if err := s.persistAndNotify(ctx, c); err != nil {
		return nil, err
	}

	view := ToCartView(c, cart.DeliveryStandard)
	return &view, nil
}

// RemoveItem removes the line for productID; unknown ids are ignored
func (s *CartService) RemoveItem(ctx context.Context, productID string) (*CartView, error) {
	c, err := s.carts.Load(ctx)
	if err != nil {
		return nil, err
	}

	c = c.Remove(productID)
	if err := s.persistAndNotify(ctx, c); err != nil {
		return nil, err
	}

	view := ToCartView(c, cart.DeliveryStandard)
	return &view, nil
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.carts.Clear(ctx); err != nil {
		return err
	}
	s.notify(ctx, cart.Empty())
	return nil
}

// ItemCount returns the total quantity across all cart lines
func (s *CartService) ItemCount(ctx context.Context) (int, error) {
	c, err := s.carts.Load(ctx)
	if err != nil {
		return 0, err
	}
	return c.ItemCount(), nil
}

// persistAndNotify saves the cart and then publishes cart.changed. A failed
// save aborts before any event goes out; a failed publish is logged but
// does not undo the already-persisted mutation.
func (s *CartService) persistAndNotify(ctx context.Context, c cart.Cart) error {
	if err := s.carts.Save(ctx, c); err != nil {
		return err
	}
	s.notify(ctx, c)
	return nil
}

func (s *CartService) notify(ctx context.Context, c cart.Cart) {
	if err := s.publisher.Publish(ctx, cart.NewChangedEvent(cart.StorageKey, c)); err != nil {
		s.logger.Warn("failed to publish cart.changed", zap.Error(err))
	}
}
