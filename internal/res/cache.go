package res

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gompdf/invoicepdf/pkg/api"
	"github.com/gompdf/invoicepdf/pkg/invoice"
)

// KV is the key-value store behind CachedSource
type KV interface {
	// Get returns ok=false when the key does not exist
	Get(ctx context.Context, key string) (val string, ok bool, err error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

// RedisKV adapts a go-redis client to KV
type RedisKV struct {
	client *redis.Client
}

var _ KV = (*RedisKV)(nil)

// NewRedisKV creates a store with the given client options
func NewRedisKV(opts *redis.Options) *RedisKV {
	return &RedisKV{client: redis.NewClient(opts)}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Close closes the underlying client
func (r *RedisKV) Close() error {
	return r.client.Close()
}

// CachedSource keeps decoded records in a KV store in front of another
// source. Store failures are logged and bypassed; they never fail a lookup.
type CachedSource struct {
	inner  api.Source
	kv     KV
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

var _ api.Source = (*CachedSource)(nil)

// NewCachedSource wraps inner. A zero ttl keeps entries until evicted.
func NewCachedSource(inner api.Source, kv KV, ttl time.Duration, log *zap.Logger) *CachedSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedSource{inner: inner, kv: kv, ttl: ttl, prefix: "invoice:", log: log}
}

func (c *CachedSource) Invoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	key := c.prefix + id
	val, ok, err := c.kv.Get(ctx, key)
	switch {
	case err != nil:
		c.log.Warn("invoice cache unavailable", zap.String("id", id), zap.Error(err))
	case ok:
		if inv, err := decode([]byte(val)); err == nil && inv != nil {
			return inv, nil
		}
		c.log.Warn("invoice cache entry unreadable", zap.String("id", id))
	}

	inv, err := c.inner.Invoice(ctx, id)
	if err != nil || inv == nil {
		return inv, err
	}

	data, err := json.Marshal(inv)
	if err != nil {
		c.log.Warn("invoice not cached", zap.String("id", id), zap.Error(err))
		return inv, nil
	}
	if err := c.kv.Set(ctx, key, string(data), c.ttl); err != nil {
		c.log.Warn("invoice not cached", zap.String("id", id), zap.Error(err))
	}
	return inv, nil
}
