package model

import (
	"github.com/minjipark/linkmemo-service/internal/domain"
)

// AuthResponse contains authentication response data
type AuthResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn"` // seconds
}

// RefreshTokenRequest is the payload for POST /v1/auth/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest identifies the caller to revoke; the user id is injected
// from the request principal.
type LogoutRequest struct {
	UserID *int64 `json:"-"`
}

// SetUserID assigns the current user id resolved from the request principal.
func (r *LogoutRequest) SetUserID(id *int64) {
	r.UserID = id
}

// UserResponse represents the current user payload
type UserResponse struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// UserResponseFromDomain converts a domain user to its response form
func UserResponseFromDomain(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		ProfileImageURL: user.ProfileImageURL,
	}
}
