package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a redis backend so multiple dashboard
// instances can share one snapshot cache and session set.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the redis URL and verifies the connection.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) SaveSnapshot(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.client.Set(ctx, "snapshot:"+key, data, ttl).Err()
}

func (s *RedisStore) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, "snapshot:"+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) SaveSession(ctx context.Context, session *Session, ttl time.Duration) error {
	data, err := marshalSession(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, "session:"+session.ID, data, ttl).Err()
}

func (s *RedisStore) GetSession(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, "session:"+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	return unmarshalSession(data)
}

func (s *RedisStore) DeleteSession(ctx context.Context, id string) error {
	return s.client.Del(ctx, "session:"+id).Err()
}
