package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shop/storefront/internal/domain/shared"
)

// keyPrefix namespaces every storefront key in a shared redis
const keyPrefix = "storefront:"

// RedisStore is a KVStore over redis, for deployments where several
// storefront instances share one session store
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed store and verifies connectivity
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Get returns the raw value stored under key, or shared.ErrKeyNotFound
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", shared.ErrKeyNotFound, key)
		}
		return nil, err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, keyPrefix+key, value, 0).Err()
}

// Delete removes key; deleting a missing key is not an error
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}

// Close releases the underlying connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ shared.KVStore = (*RedisStore)(nil)
