package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/minjipark/linkmemo-service/internal/domain"
)

// Common errors
var (
	// ErrNotFound is returned when a queried row does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate resource")
)

// UserRepository defines the interface for user data operations.
//
// The Tx variants run against a caller-provided transaction; the identity
// resolver uses them so the lookup-then-insert sequence is atomic.
type UserRepository interface {
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	GetActiveUserByEmail(ctx context.Context, email string) (*domain.User, error)

	GetActiveUserByEmailTx(ctx context.Context, tx pgx.Tx, email string) (*domain.User, error)
	CreateUserTx(ctx context.Context, tx pgx.Tx, user *domain.User) error
}
