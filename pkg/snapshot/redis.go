package snapshot

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces snapshot keys in Redis.
const DefaultRedisPrefix = "declarative:snapshot:"

// RedisStore keeps rendered pages in Redis, for a cache or edge server to
// pick up. Each Put also records the key in a sorted index by publish time.
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisTTL expires snapshots after ttl. Zero keeps them forever.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// WithRedisPrefix replaces DefaultRedisPrefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// NewRedisStore connects to the Redis server at addr.
func NewRedisStore(addr, password string, db int, opts ...RedisOption) *RedisStore {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(client, opts...)
}

// NewRedisStoreFromClient uses an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: DefaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

func (s *RedisStore) indexKey() string {
	return s.prefix + "index"
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, key string, body []byte) (string, error) {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(key), body, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(time.Now().UnixMilli()),
		Member: key,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("redis put %s: %w", key, err)
	}
	return fmt.Sprintf("redis://%s/%s", s.client.Options().Addr, s.key(key)), nil
}

// Get returns a stored page. ok is false when the key is absent or expired.
func (s *RedisStore) Get(ctx context.Context, key string) (body []byte, ok bool, err error) {
	body, err = s.client.Get(ctx, s.key(key)).Bytes()
	if err == backend.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Keys lists published keys, most recent first. Keys whose page has
// expired are pruned from the index.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return keys, nil
	}

	pipe := s.client.Pipeline()
	exists := make([]*backend.IntCmd, len(keys))
	for i, k := range keys {
		exists[i] = pipe.Exists(ctx, s.key(k))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis keys: %w", err)
	}

	live := make([]string, 0, len(keys))
	var expired []any
	for i, k := range keys {
		if exists[i].Val() == 0 {
			expired = append(expired, k)
			continue
		}
		live = append(live, k)
	}
	if len(expired) > 0 {
		if err := s.client.ZRem(ctx, s.indexKey(), expired...).Err(); err != nil {
			return nil, fmt.Errorf("redis prune index: %w", err)
		}
	}
	return live, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
