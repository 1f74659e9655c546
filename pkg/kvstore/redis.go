package kvstore

import (
	"context"
	"errors"

	"github.com/swiftcart/swiftcart-backend/pkg/redis"
)

// Redis persists session blobs in Redis with no expiry: checkout state
// survives reloads and restarts until consumed or cleared.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps the shared Redis client as a Store.
func NewRedis(client *redis.Client) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.client.SessionKey(key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(val), true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.client.SessionKey(key), string(value), 0)
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.SessionKey(key))
}
