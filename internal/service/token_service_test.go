package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjipark/linkmemo-service/internal/domain"
)

func TestTokenService(t *testing.T) {
	user := &domain.User{ID: 42, Email: "user@example.com"}

	t.Run("generated access token validates back to the user", func(t *testing.T) {
		svc := newTestTokenService(newMemoryTokenRepo())

		pair, err := svc.GenerateTokens(context.Background(), user)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, int64(time.Hour.Seconds()), pair.ExpiresIn)

		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.NotEmpty(t, claims.ID, "each token carries a unique jti")
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		repo := newMemoryTokenRepo()
		svc := newTestTokenService(repo)
		other := NewTokenService(TokenServiceConfig{
			TokenRepo:         repo,
			Secret:            "other-secret",
			AccessExpiration:  time.Hour,
			RefreshExpiration: 24 * time.Hour,
		})

		pair, err := other.GenerateTokens(context.Background(), user)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := newTestTokenService(newMemoryTokenRepo())

		_, err := svc.ValidateAccessToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh rotates the pair and invalidates the old refresh token", func(t *testing.T) {
		svc := newTestTokenService(newMemoryTokenRepo())

		pair, err := svc.GenerateTokens(context.Background(), user)
		require.NoError(t, err)

		rotated, err := svc.RefreshTokens(context.Background(), pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

		_, err = svc.RefreshTokens(context.Background(), pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken, "a superseded refresh token must not rotate again")
	})

	t.Run("revoked refresh token cannot rotate", func(t *testing.T) {
		svc := newTestTokenService(newMemoryTokenRepo())

		pair, err := svc.GenerateTokens(context.Background(), user)
		require.NoError(t, err)

		require.NoError(t, svc.RevokeRefreshToken(context.Background(), user.ID))

		_, err = svc.RefreshTokens(context.Background(), pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}
