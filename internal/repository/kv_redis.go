package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisKVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisKVStore struct {
	client  redisKVClient
	prefix  string
	timeout time.Duration
}

// NewRedisKVStore guarda las claves sin TTL bajo el prefijo "caddy:kv:".
func NewRedisKVStore(client *redis.Client) KVStore {
	if client == nil {
		return nil
	}
	return &redisKVStore{
		client:  client,
		prefix:  "caddy:kv:",
		timeout: 500 * time.Millisecond,
	}
}

func (s *redisKVStore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *redisKVStore) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *redisKVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, s.prefix+k)
	}
	return s.client.Del(ctx, prefixed...).Err()
}
