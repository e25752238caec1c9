package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inventario/inventory-console/internal/core/ports"
)

const keyNamespace = "inventory-console:"

// TokenStorage keeps session tokens in Redis so several console replicas
// share the same browser sessions.
// Key format: inventory-console:<key>
type TokenStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStorage wraps client. A positive ttl bounds how long an abandoned
// token lingers; zero keeps tokens until they are deleted.
func NewTokenStorage(client *redis.Client, ttl time.Duration) *TokenStorage {
	return &TokenStorage{client: client, ttl: ttl}
}

func (s *TokenStorage) Get(ctx context.Context, key string) (string, error) {
	tok, err := s.client.Get(ctx, keyNamespace+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get token: %w", err)
	}
	return tok, nil
}

func (s *TokenStorage) Set(ctx context.Context, key, token string) error {
	if err := s.client.Set(ctx, keyNamespace+key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

func (s *TokenStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyNamespace+key).Err(); err != nil {
		return fmt.Errorf("redis delete token: %w", err)
	}
	return nil
}
