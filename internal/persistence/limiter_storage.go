package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const limiterKeyPrefix = "case-service:limiter:"

// LimiterStorage implements fiber.Storage on Redis so request limits are
// shared by every instance of the service.
type LimiterStorage struct {
	client  redis.UniversalClient
	timeout time.Duration
}

// NewLimiterStorage wraps client.
func NewLimiterStorage(client redis.UniversalClient) *LimiterStorage {
	return &LimiterStorage{client: client, timeout: time.Second}
}

func (s *LimiterStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get returns nil without error for missing keys.
func (s *LimiterStorage) Get(key string) ([]byte, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.client.Get(ctx, limiterKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val; a zero exp keeps the key forever.
func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Set(ctx, limiterKeyPrefix+key, val, exp).Err()
}

func (s *LimiterStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Del(ctx, limiterKeyPrefix+key).Err()
}

// Reset removes every limiter key, leaving the rest of the database alone.
func (s *LimiterStorage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()

	iter := s.client.Scan(ctx, 0, limiterKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op; the client is owned by Redis.
func (s *LimiterStorage) Close() error {
	return nil
}
