package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"inkubator_backend/internals/configs"
)

// RedisKV menyimpan value tanpa TTL; Prefix dipakai untuk memisahkan instance portal.
type RedisKV struct {
	Client *redis.Client
	Prefix string
}

func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{Client: client, Prefix: prefix}
}

// NewRedisKVFromEnv: PORTAL_REDIS_ADDR, PORTAL_REDIS_PASSWORD, PORTAL_REDIS_DB, PORTAL_REDIS_PREFIX.
func NewRedisKVFromEnv(ctx context.Context) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     configs.GetEnv("PORTAL_REDIS_ADDR", "localhost:6379"),
		Password: configs.GetEnv("PORTAL_REDIS_PASSWORD"),
		DB:       configs.GetEnvInt("PORTAL_REDIS_DB", 0),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisKV(client, configs.GetEnv("PORTAL_REDIS_PREFIX", "inkubator:")), nil
}

func (r *RedisKV) key(k string) string { return r.Prefix + k }

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.Client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.Client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.Client.Del(ctx, r.key(key)).Err()
}

func (r *RedisKV) Close() error { return r.Client.Close() }
