// Package kv stores cart snapshots in Redis.
package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/FrameCraft_Go/internal/cart"
)

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 100

// RedisStorage is a cart.Storage backed by Redis keys with native expiry.
type RedisStorage struct {
	client redis.UniversalClient
}

// NewRedisStorage wraps an existing client.
func NewRedisStorage(client redis.UniversalClient) *RedisStorage {
	return &RedisStorage{client: client}
}

// Open parses a redis:// URL and returns a storage using it.
func Open(url string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return NewRedisStorage(redis.NewClient(opts)), nil
}

var _ cart.Storage = (*RedisStorage)(nil)

func (s *RedisStorage) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrNotFound
	}
	return data, err
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Keys walks the keyspace with SCAN so large deployments are not blocked.
func (s *RedisStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, escapeGlob(prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *RedisStorage) Available(ctx context.Context) bool {
	return s.client.Ping(ctx).Err() == nil
}

// Close releases the client's connections.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
