package otp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/swiftcart/swiftcart-backend/pkg/redis"
)

// codeStore holds one pending code per identifier, expiring on its own.
type codeStore interface {
	Save(ctx context.Context, identifier, code string, ttl time.Duration) error
	Load(ctx context.Context, identifier string) (string, bool, error)
	Remove(ctx context.Context, identifier string) error
}

// RedisStore keeps codes in Redis so they survive process restarts and
// are shared across instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps the shared Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, identifier, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.client.OTPKey(identifier), code, ttl)
}

func (s *RedisStore) Load(ctx context.Context, identifier string) (string, bool, error) {
	code, err := s.client.Get(ctx, s.client.OTPKey(identifier))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return code, true, nil
}

func (s *RedisStore) Remove(ctx context.Context, identifier string) error {
	return s.client.Del(ctx, s.client.OTPKey(identifier))
}

type memoryEntry struct {
	code    string
	expires time.Time
}

// MemoryStore is the single-process fallback used when Redis is not
// reachable. Expiry is checked lazily on read.
type MemoryStore struct {
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Save(_ context.Context, identifier, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[identifier] = memoryEntry{code: code, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, identifier string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[identifier]
	if !ok {
		return "", false, nil
	}
	if s.now().After(entry.expires) {
		delete(s.entries, identifier)
		return "", false, nil
	}
	return entry.code, true, nil
}

func (s *MemoryStore) Remove(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, identifier)
	return nil
}
