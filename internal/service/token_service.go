package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/minjipark/linkmemo-service/internal/domain"
	"github.com/minjipark/linkmemo-service/internal/repository"
)

// Common errors
var (
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrInvalidRefreshToken = errors.New("invalid or revoked refresh token")
)

// Claims represents JWT claims
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenPair contains access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // seconds
}

// TokenService issues and validates the JWT session tokens that carry the
// authenticated identity between requests.
type TokenService interface {
	GenerateTokens(ctx context.Context, user *domain.User) (*TokenPair, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	RevokeRefreshToken(ctx context.Context, userID int64) error
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	TokenRepo         repository.TokenRepository
	Secret            string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
}

type tokenService struct {
	tokenRepo         repository.TokenRepository
	secret            []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(config TokenServiceConfig) TokenService {
	return &tokenService{
		tokenRepo:         config.TokenRepo,
		secret:            []byte(config.Secret),
		accessExpiration:  config.AccessExpiration,
		refreshExpiration: config.RefreshExpiration,
	}
}

// GenerateTokens issues an access/refresh token pair for the user and stores
// the refresh token so it can be rotated and revoked.
func (s *tokenService) GenerateTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.signToken(user.ID, user.Email, s.accessExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.signToken(user.ID, user.Email, s.refreshExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.tokenRepo.StoreRefreshToken(ctx, user.ID, refreshToken, s.refreshExpiration); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessExpiration.Seconds()),
	}, nil
}

func (s *tokenService) signToken(userID int64, email string, expiration time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateAccessToken validates and parses an access token
func (s *tokenService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// RefreshTokens validates a refresh token against the stored one and rotates
// the pair. A token that does not match the stored one has been revoked or
// superseded and is rejected.
func (s *tokenService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateAccessToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.tokenRepo.GetRefreshToken(ctx, claims.UserID)
	if err != nil || stored != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	user := &domain.User{ID: claims.UserID, Email: claims.Email}
	return s.GenerateTokens(ctx, user)
}

// RevokeRefreshToken removes the user's stored refresh token
func (s *tokenService) RevokeRefreshToken(ctx context.Context, userID int64) error {
	return s.tokenRepo.DeleteRefreshToken(ctx, userID)
}
