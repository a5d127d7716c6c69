package order

import "context"

// Cache is the local order mirror. Orders are server-owned; the cache keeps
// the last known copies so history remains browsable offline and so an
// optimistic local cancellation has somewhere to live until it is
// reconciled with the server.
type Cache interface {
	// List returns all cached orders, newest first
	List(ctx context.Context) ([]Order, error)
	// Get returns shared.ErrNotFound (wrapped) when the order is not cached
	Get(ctx context.Context, id string) (*Order, error)
	// Put stores or replaces the cached copy of an order
	Put(ctx context.Context, o Order) error
	// PendingSync returns the cached orders still awaiting reconciliation
	PendingSync(ctx context.Context) ([]Order, error)
}
