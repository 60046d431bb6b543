package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/acai-pdv/config"
	"github.com/yeremiapane/acai-pdv/services"
)

type redisCmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
}

// RedisSnapshotStore keeps each slot under "<prefix>:<name>" with no expiry.
type RedisSnapshotStore struct {
	client redisCmdable
	prefix string
}

func NewRedisSnapshotStore(client redisCmdable, prefix string) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, prefix: prefix}
}

// NewRedisClient connects and pings the configured server.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisSnapshotStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}

func (s *RedisSnapshotStore) Load(ctx context.Context, name string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, services.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, name string, payload []byte) error {
	return s.client.Set(ctx, s.key(name), string(payload), 0).Err()
}
