package cart

import "context"

// StorageKey is the stable key the cart is persisted under
const StorageKey = "cart"

// Repository persists the cart as a whole under a single stable key.
// Load returns an empty cart when nothing has been stored yet.
type Repository interface {
	Load(ctx context.Context) (Cart, error)
	Save(ctx context.Context, c Cart) error
	Clear(ctx context.Context) error
}
