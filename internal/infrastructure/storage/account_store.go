package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shop/storefront/internal/domain/account"
	"github.com/shop/storefront/internal/domain/shared"
)

const (
	credentialKey = "credential"
	profileKey    = "profile"

	accountSchemaVersion = 1
)

// KVAccountStore persists the session credential and the cached profile
type KVAccountStore struct {
	store shared.KVStore
}

// NewKVAccountStore creates a new KVAccountStore
func NewKVAccountStore(store shared.KVStore) *KVAccountStore {
	return &KVAccountStore{store: store}
}

// LoadCredential returns the cached credential
func (s *KVAccountStore) LoadCredential(ctx context.Context) (*account.Credential, error) {
	var c account.Credential
	if err := s.load(ctx, credentialKey, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveCredential caches the credential
func (s *KVAccountStore) SaveCredential(ctx context.Context, c account.Credential) error {
	return s.save(ctx, credentialKey, c)
}

// LoadProfile returns the cached profile
func (s *KVAccountStore) LoadProfile(ctx context.Context) (*account.Profile, error) {
	var p account.Profile
	if err := s.load(ctx, profileKey, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile caches the profile
func (s *KVAccountStore) SaveProfile(ctx context.Context, p account.Profile) error {
	return s.save(ctx, profileKey, p)
}

// Clear removes the credential and the cached profile together
func (s *KVAccountStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, credentialKey); err != nil {
		return err
	}
	return s.store.Delete(ctx, profileKey)
}

func (s *KVAccountStore) load(ctx context.Context, key string, out any) error {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return err
	}
	env, err := unwrap(raw)
	if err != nil {
		return err
	}
	if env.Version != accountSchemaVersion {
		return fmt.Errorf("unsupported account document version %d", env.Version)
	}
	return json.Unmarshal(env.Data, out)
}

func (s *KVAccountStore) save(ctx context.Context, key string, doc any) error {
	raw, err := wrap(accountSchemaVersion, doc)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key, raw)
}

var _ account.Store = (*KVAccountStore)(nil)
