package domain

import (
	"time"
)

// User represents a user in the system. Users are created on first Kakao
// login and resolved by email on every login after that.
type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewUser builds a user from a provider profile. Fields absent from the
// profile stay empty; they are never defaulted to placeholder identities.
func NewUser(email, name, profileImageURL string) *User {
	return &User{
		Email:           email,
		Name:            name,
		ProfileImageURL: profileImageURL,
		IsActive:        true,
	}
}
