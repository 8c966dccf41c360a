package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/job-browser/internal/storage"
)

const defaultPrefix = "jobbrowser"

// Config holds Redis connection configuration
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// KV implements storage.KV with plain Redis strings under a key prefix
type KV struct {
	client *redis.Client
	prefix string
}

// NewKV connects to Redis and verifies the connection
func NewKV(ctx context.Context, cfg Config) (*KV, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: addr is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return NewKVWithClient(client, cfg.Prefix), nil
}

// NewKVWithClient wraps an existing client
func NewKVWithClient(client *redis.Client, prefix string) *KV {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &KV{client: client, prefix: prefix}
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.makeKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.makeKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *KV) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.makeKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *KV) Close() error {
	return s.client.Close()
}

func (s *KV) makeKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

var _ storage.KV = (*KV)(nil)
