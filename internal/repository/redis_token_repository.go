package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const refreshTokenKeyPrefix = "refresh_token:"

// RedisTokenRepository implements TokenRepository on Redis. The key carries
// the TTL so expired tokens vanish without a sweeper.
type RedisTokenRepository struct {
	client goredis.Cmdable
}

// NewRedisTokenRepository creates a Redis-backed refresh token repository
func NewRedisTokenRepository(client goredis.Cmdable) TokenRepository {
	return &RedisTokenRepository{client: client}
}

func refreshTokenKey(userID int64) string {
	return fmt.Sprintf("%s%d", refreshTokenKeyPrefix, userID)
}

// StoreRefreshToken stores the user's refresh token, replacing any previous one
func (r *RedisTokenRepository) StoreRefreshToken(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("refresh token ttl must be positive")
	}

	if err := r.client.Set(ctx, refreshTokenKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// GetRefreshToken returns the user's stored refresh token, or ErrNotFound
func (r *RedisTokenRepository) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	token, err := r.client.Get(ctx, refreshTokenKey(userID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}

	return token, nil
}

// DeleteRefreshToken removes the user's stored refresh token
func (r *RedisTokenRepository) DeleteRefreshToken(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, refreshTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}
