package repository

import (
	"context"
	"time"
)

// TokenRepository defines the interface for refresh token storage. Tokens are
// stored per user with a TTL; one valid refresh token per user at a time.
type TokenRepository interface {
	StoreRefreshToken(ctx context.Context, userID int64, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID int64) (string, error)
	DeleteRefreshToken(ctx context.Context, userID int64) error
}
