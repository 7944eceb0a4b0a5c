// Package redis provides a Redis-backed session store
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flavorforge/recipeai/internal/infrastructure/config"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient creates a Redis client from configuration and verifies the connection
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (redis.UniversalClient, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{cfg.Addr()},
		Password:     cfg.Password,
		DB:           cfg.Database,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	logger.Info("Connected to Redis", zap.String("addr", cfg.Addr()), zap.Int("db", cfg.Database))
	return client, nil
}

// SessionStore implements the session store on top of Redis strings
type SessionStore struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewSessionStore creates a Redis session store
func NewSessionStore(client redis.UniversalClient, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{client: client, logger: logger}
}

var _ outbound.SessionStore = (*SessionStore)(nil)

// Get retrieves a value
func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, outbound.ErrKeyNotFound
	}
	if err != nil {
		s.logger.Debug("Session get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value with TTL; zero means no expiry
func (s *SessionStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.logger.Error("Session set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes keys
func (s *SessionStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("Session delete failed", zap.Strings("keys", keys), zap.Error(err))
		return err
	}
	return nil
}
