package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/minjipark/linkmemo-service/internal/domain"
	"github.com/minjipark/linkmemo-service/internal/kakao"
	"github.com/minjipark/linkmemo-service/internal/model"
	"github.com/minjipark/linkmemo-service/internal/repository"
)

// ErrUserNotAuthenticated is returned when the provider rejects the profile
// call (expired or invalid access token). Provider-specific error shapes
// never cross this boundary.
var ErrUserNotAuthenticated = errors.New("failed to authenticate with kakao")

// KakaoClient is the outbound Kakao surface the auth service depends on.
type KakaoClient interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*kakao.UserInfo, error)
}

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	ExecuteTransaction(ctx context.Context, txFunc func(pgx.Tx) error) error
}

// AuthService handles the Kakao login flow and identity resolution.
type AuthService interface {
	GetKakaoLoginURL(state string) string
	HandleKakaoCallback(ctx context.Context, code string) (*model.AuthResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID int64) error
}

type authService struct {
	kakaoClient  KakaoClient
	userRepo     repository.UserRepository
	txRunner     TxRunner
	tokenService TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(
	kakaoClient KakaoClient,
	userRepo repository.UserRepository,
	txRunner TxRunner,
	tokenService TokenService,
) AuthService {
	return &authService{
		kakaoClient:  kakaoClient,
		userRepo:     userRepo,
		txRunner:     txRunner,
		tokenService: tokenService,
	}
}

// GetKakaoLoginURL returns the Kakao authorization URL for the given state
func (s *authService) GetKakaoLoginURL(state string) string {
	return s.kakaoClient.AuthCodeURL(state)
}

// HandleKakaoCallback turns a provider authorization code into a local
// session: exchange the code, fetch the profile, resolve or create the user,
// then issue the token pair.
func (s *authService) HandleKakaoCallback(ctx context.Context, code string) (*model.AuthResponse, error) {
	accessToken, err := s.kakaoClient.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	// The access token is used for this single profile call and discarded.
	info, err := s.kakaoClient.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserNotAuthenticated, err)
	}

	if info.Email == "" {
		return nil, fmt.Errorf("%w: profile has no email", ErrUserNotAuthenticated)
	}

	user, err := s.resolveOrCreateUser(ctx, info)
	if err != nil {
		return nil, err
	}

	tokens, err := s.tokenService.GenerateTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &model.AuthResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

// resolveOrCreateUser looks up an activated user by email and creates one on
// first login, inside one transaction. The local profile is the source of
// truth after first creation: repeat logins return the row unchanged, with no
// profile-field sync.
//
// Two concurrent first logins for the same email cannot produce two rows:
// the unique constraint on (email, is_active) is the backstop, and a
// duplicate-key insert means another request won the race — the row is
// re-read and returned, never surfaced as a failure.
func (s *authService) resolveOrCreateUser(ctx context.Context, info *kakao.UserInfo) (*domain.User, error) {
	var user *domain.User

	err := s.txRunner.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		existing, err := s.userRepo.GetActiveUserByEmailTx(ctx, tx, info.Email)
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		created := domain.NewUser(info.Email, info.Nickname, info.ProfileImageURL)
		if err := s.userRepo.CreateUserTx(ctx, tx, created); err != nil {
			return err
		}

		user = created
		return nil
	})

	if errors.Is(err, repository.ErrDuplicate) {
		// Lost the race against a concurrent first login. The duplicate key
		// aborted the transaction, so re-read the winner's row outside it.
		user, err = s.userRepo.GetActiveUserByEmail(ctx, info.Email)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	return user, nil
}

// RefreshTokens rotates the caller's token pair
func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	return s.tokenService.RefreshTokens(ctx, refreshToken)
}

// Logout revokes the caller's refresh token
func (s *authService) Logout(ctx context.Context, userID int64) error {
	return s.tokenService.RevokeRefreshToken(ctx, userID)
}
