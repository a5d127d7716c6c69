package shared

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KVStore.Get when the key has no value
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the local persistence port: a namespaced key-value store over
// whatever durable storage the deployment offers (embedded SQLite by
// default, Redis for shared setups, in-memory in tests).
//
// Writes to the same key are last-write-wins; concurrent writers from
// separate processes are not merged. Values are opaque JSON documents, and
// callers are expected to wrap them in a versioned envelope so field-shape
// changes can be migrated on read.
type KVStore interface {
	// Get returns the raw value stored under key, or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
