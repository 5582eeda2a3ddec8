package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minjipark/linkmemo-service/internal/domain"
)

const uniqueViolationCode = "23505"

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *pgxpool.Pool) UserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, name, profile_image_url, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.ProfileImageURL,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, userID))
}

// GetActiveUserByEmail retrieves an activated user by their email
func (r *PostgresUserRepository) GetActiveUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active = true`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// GetActiveUserByEmailTx retrieves an activated user by email inside a transaction
func (r *PostgresUserRepository) GetActiveUserByEmailTx(ctx context.Context, tx pgx.Tx, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active = true`
	return scanUser(tx.QueryRow(ctx, query, email))
}

// CreateUserTx inserts a new user inside a transaction. A unique-constraint
// violation on (email, is_active) is reported as ErrDuplicate so the caller
// can re-resolve instead of failing.
func (r *PostgresUserRepository) CreateUserTx(ctx context.Context, tx pgx.Tx, user *domain.User) error {
	query := `
		INSERT INTO users (email, name, profile_image_url, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(
		ctx,
		query,
		user.Email,
		user.Name,
		user.ProfileImageURL,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}
