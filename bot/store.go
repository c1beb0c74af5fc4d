package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// Cache is the storage primitive behind sessions and transcripts. The
// transport serializes messages per session, so implementations only need
// to be safe across different sessions.
type Cache[S any] interface {
	Set(ctx context.Context, key string, val S) error
	Get(ctx context.Context, key string) (S, bool, error)
	Del(ctx context.Context, key string) error
}

// MemoryCache is the in-process implementation used by tests and
// single-instance deployments.
type MemoryCache[S any] struct {
	mu sync.RWMutex
	m  map[string]S
}

func NewMemoryCache[S any]() *MemoryCache[S] {
	return &MemoryCache[S]{m: map[string]S{}}
}

func (m *MemoryCache[S]) Set(ctx context.Context, key string, val S) error {
	m.mu.Lock()
	m.m[key] = val
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache[S]) Get(ctx context.Context, key string) (S, bool, error) {
	m.mu.RLock()
	val, ok := m.m[key]
	m.mu.RUnlock()
	return val, ok, nil
}

func (m *MemoryCache[S]) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.m, key)
	m.mu.Unlock()
	return nil
}

// RedisCache keeps values as sonic-encoded JSON so a bot restart does not
// drop in-flight sessions.
type RedisCache[S any] struct {
	client *redis.Client
}

func NewRedisCache[S any](client *redis.Client) *RedisCache[S] {
	return &RedisCache[S]{client: client}
}

func (r *RedisCache[S]) Set(ctx context.Context, key string, val S) error {
	payload, err := sonic.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.client.Set(ctx, key, payload, 0).Err()
}

func (r *RedisCache[S]) Get(ctx context.Context, key string) (S, bool, error) {
	var zero S
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	var val S
	if err := sonic.Unmarshal(payload, &val); err != nil {
		return zero, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisCache[S]) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Store namespaces a Cache and routes keys through the context, so one
// cache backend can hold sessions and transcripts side by side.
type Store[S any] struct {
	core      Cache[S]
	namespace string
	keyFn     func(ctx context.Context) (string, bool)
}

func NewStore[S any](core Cache[S], namespace string, keyFn func(ctx context.Context) (string, bool)) Store[S] {
	return Store[S]{core: core, namespace: namespace, keyFn: keyFn}
}

var errNoKey = errors.New("bot: session key not found in context")

func (s Store[S]) key(ctx context.Context) (string, bool) {
	key, ok := s.keyFn(ctx)
	if !ok {
		return "", false
	}
	return s.namespace + ":" + key, true
}

func (s Store[S]) Set(ctx context.Context, val S) error {
	key, ok := s.key(ctx)
	if !ok {
		return errNoKey
	}
	return s.core.Set(ctx, key, val)
}

func (s Store[S]) Get(ctx context.Context) (S, bool, error) {
	key, ok := s.key(ctx)
	if !ok {
		var zero S
		return zero, false, errNoKey
	}
	return s.core.Get(ctx, key)
}

func (s Store[S]) Del(ctx context.Context) error {
	key, ok := s.key(ctx)
	if !ok {
		return errNoKey
	}
	return s.core.Del(ctx, key)
}
