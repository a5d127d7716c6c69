package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shop/storefront/internal/domain/order"
	"github.com/shop/storefront/internal/domain/shared"
)

// ordersKey is the stable key the order mirror is persisted under
const ordersKey = "orders"

// ordersSchemaVersion is the current order cache document version
const ordersSchemaVersion = 1

// KVOrderCache mirrors server-owned orders into the key-value store. The
// whole mirror lives under one key; order counts per customer are small
// enough that read-modify-write of the full document is fine.
type KVOrderCache struct {
	store shared.KVStore
}

// NewKVOrderCache creates a new KVOrderCache
func NewKVOrderCache(store shared.KVStore) *KVOrderCache {
	return &KVOrderCache{store: store}
}

// List returns all cached orders, newest first
func (c *KVOrderCache) List(ctx context.Context) ([]order.Order, error) {
	orders, err := c.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Get returns shared.ErrKeyNotFound (wrapped) when the order is not cached
func (c *KVOrderCache) Get(ctx context.Context, id string) (*order.Order, error) {
	orders, err := c.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range orders {
		if orders[idx].ID == id {
			return &orders[idx], nil
		}
	}
	return nil, fmt.Errorf("%w: order %s", shared.ErrKeyNotFound, id)
}

// Put stores or replaces the cached copy of an order
func (c *KVOrderCache) Put(ctx context.Context, o order.Order) error {
	orders, err := c.loadAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for idx := range orders {
		if orders[idx].ID == o.ID {
			orders[idx] = o
			replaced = true
			break
		}
	}
	if !replaced {
		orders = append(orders, o)
	}

	raw, err := wrap(ordersSchemaVersion, orders)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, ordersKey, raw)
}

// PendingSync returns the cached orders still awaiting reconciliation
func (c *KVOrderCache) PendingSync(ctx context.Context) ([]order.Order, error) {
	orders, err := c.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]order.Order, 0)
	for _, o := range orders {
		if o.PendingSync {
			pending = append(pending, o)
		}
	}
	return pending, nil
}

func (c *KVOrderCache) loadAll(ctx context.Context) ([]order.Order, error) {
	raw, err := c.store.Get(ctx, ordersKey)
	if err != nil {
		if errors.Is(err, shared.ErrKeyNotFound) {
			return []order.Order{}, nil
		}
		return nil, err
	}

	env, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	if env.Version != ordersSchemaVersion {
		return nil, fmt.Errorf("unsupported order cache version %d", env.Version)
	}

	var orders []order.Order
	if err := json.Unmarshal(env.Data, &orders); err != nil {
		return nil, fmt.Errorf("decoding order cache: %w", err)
	}
	return orders, nil
}

var _ order.Cache = (*KVOrderCache)(nil)
