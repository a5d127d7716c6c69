package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/shared"
)

// cartSchemaVersion is the current cart document version. Version 1 stored
// each line's price under "price"; version 2 renamed it to "unit_price".
const cartSchemaVersion = 2

// v1LineItem is the line shape of version 1 cart documents
type v1LineItem struct {
	ProductID     string           `json:"product_id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Quantity      int              `json:"quantity"`
	ImageRef      string           `json:"image_ref,omitempty"`
	Rating        float64          `json:"rating,omitempty"`
}

type v1Cart struct {
	Items []v1LineItem `json:"items"`
}

// KVCartRepository persists the cart in the key-value store under a single
// key, wrapped in a versioned envelope. Older documents are migrated on
// read and rewritten at the current version on the next save.
type KVCartRepository struct {
	store shared.KVStore
}

// NewKVCartRepository creates a new KVCartRepository
func NewKVCartRepository(store shared.KVStore) *KVCartRepository {
	return &KVCartRepository{store: store}
}

// Load returns the stored cart, or an empty cart when none exists
func (r *KVCartRepository) Load(ctx context.Context) (cart.Cart, error) {
	raw, err := r.store.Get(ctx, cart.StorageKey)
	if err != nil {
		if errors.Is(err, shared.ErrKeyNotFound) {
			return cart.Empty(), nil
		}
		return cart.Cart{}, err
	}

	env, err := unwrap(raw)
	if err != nil {
		return cart.Cart{}, err
	}

	switch env.Version {
	case 1:
		return migrateV1Cart(env.Data)
	case cartSchemaVersion:
		var c cart.Cart
		if err := json.Unmarshal(env.Data, &c); err != nil {
			return cart.Cart{}, fmt.Errorf("decoding cart document: %w", err)
		}
		if c.Items == nil {
			c.Items = []cart.LineItem{}
		}
		return c, nil
	default:
		return cart.Cart{}, fmt.Errorf("unsupported cart document version %d", env.Version)
	}
}

// Save persists the cart at the current document version
func (r *KVCartRepository) Save(ctx context.Context, c cart.Cart) error {
	raw, err := wrap(cartSchemaVersion, c)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, cart.StorageKey, raw)
}

// Clear removes the stored cart
func (r *KVCartRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, cart.StorageKey)
}

// migrateV1Cart lifts a version 1 document into the current line shape
func migrateV1Cart(data []byte) (cart.Cart, error) {
	var old v1Cart
	if err := json.Unmarshal(data, &old); err != nil {
		return cart.Cart{}, fmt.Errorf("decoding v1 cart document: %w", err)
	}

	items := make([]cart.LineItem, 0, len(old.Items))
	for _, line := range old.Items {
		items = append(items, cart.LineItem{
			ProductID:     line.ProductID,
			Name:          line.Name,
			UnitPrice:     line.Price,
			DiscountPrice: line.DiscountPrice,
			Quantity:      line.Quantity,
			ImageRef:      line.ImageRef,
			Rating:        line.Rating,
		})
	}
	return cart.Cart{Items: items}, nil
}

var _ cart.Repository = (*KVCartRepository)(nil)
