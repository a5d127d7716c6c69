package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/checkout"
	"github.com/shop/storefront/internal/domain/shared"
)

// draftKey is the stable key the checkout draft is persisted under
const draftKey = "checkout_draft"

// draftSchemaVersion is the current draft document version
const draftSchemaVersion = 1

// KVDraftRepository persists the checkout draft in the key-value store,
// separately from the cart so either can be cleared without the other
type KVDraftRepository struct {
	store shared.KVStore
}

// NewKVDraftRepository creates a new KVDraftRepository
func NewKVDraftRepository(store shared.KVStore) *KVDraftRepository {
	return &KVDraftRepository{store: store}
}

// Load returns the stored draft, or a fresh default draft when none exists
func (r *KVDraftRepository) Load(ctx context.Context) (checkout.Draft, error) {
	raw, err := r.store.Get(ctx, draftKey)
	if err != nil {
		if errors.Is(err, shared.ErrKeyNotFound) {
			return checkout.NewDraft(), nil
		}
		return checkout.Draft{}, err
	}

	env, err := unwrap(raw)
	if err != nil {
		return checkout.Draft{}, err
	}
	if env.Version != draftSchemaVersion {
		return checkout.Draft{}, fmt.Errorf("unsupported draft document version %d", env.Version)
	}

	var d checkout.Draft
	if err := json.Unmarshal(env.Data, &d); err != nil {
		return checkout.Draft{}, fmt.Errorf("decoding draft document: %w", err)
	}
	// Stored drafts predating a method selection fall back to the defaults
	if d.PaymentMethod == "" {
		d.PaymentMethod = checkout.PaymentGatewayCard
	}
	if d.DeliveryMethod == "" {
		d.DeliveryMethod = cart.DeliveryStandard
	}
	return d, nil
}

// Save persists the draft
func (r *KVDraftRepository) Save(ctx context.Context, d checkout.Draft) error {
	raw, err := wrap(draftSchemaVersion, d)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, draftKey, raw)
}

// Clear removes the stored draft
func (r *KVDraftRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, draftKey)
}

var _ checkout.DraftRepository = (*KVDraftRepository)(nil)
