package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minjipark/linkmemo-service/internal/domain"
)

// PostgresPostRepository implements PostRepository using PostgreSQL
type PostgresPostRepository struct {
	db *pgxpool.Pool
}

// NewPostgresPostRepository creates a new PostgreSQL post repository
func NewPostgresPostRepository(db *pgxpool.Pool) PostRepository {
	return &PostgresPostRepository{db: db}
}

const postColumns = `id, user_id, title, url, content, COALESCE(memo, ''), memo_created_at, status, is_active, created_at, updated_at`

func scanPost(row pgx.Row) (*domain.Post, error) {
	post := &domain.Post{}
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.URL,
		&post.Content,
		&post.Memo,
		&post.MemoCreatedAt,
		&post.Status,
		&post.IsActive,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return post, nil
}

// CreatePost inserts a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (user_id, title, url, content, status, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		post.UserID,
		post.Title,
		post.URL,
		post.Content,
		post.Status,
		post.IsActive,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetPostByID retrieves a post by its ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, postID int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND is_active = true`
	return scanPost(r.db.QueryRow(ctx, query, postID))
}

// GetPostByIDAndUserID retrieves a post owned by the given user
func (r *PostgresPostRepository) GetPostByIDAndUserID(ctx context.Context, postID, userID int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND user_id = $2 AND is_active = true`
	return scanPost(r.db.QueryRow(ctx, query, postID, userID))
}

// GetActivePublishedPost retrieves an activated, published post owned by the given user
func (r *PostgresPostRepository) GetActivePublishedPost(ctx context.Context, postID, userID int64) (*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id = $1 AND user_id = $2 AND status = 'published' AND is_active = true
	`
	return scanPost(r.db.QueryRow(ctx, query, postID, userID))
}

// ListPostsByUserID retrieves the user's active posts, newest first, with the total count
func (r *PostgresPostRepository) ListPostsByUserID(ctx context.Context, userID int64, filter domain.PostFilter) ([]domain.Post, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM posts WHERE user_id = $1 AND is_active = true`
	if err := r.db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE user_id = $1 AND is_active = true
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}

	return posts, total, nil
}

// UpdatePost updates the mutable fields of a post
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *domain.Post) error {
	query := `
		UPDATE posts
		SET title = $1, content = $2, status = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4 AND is_active = true
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		post.Title,
		post.Content,
		post.Status,
		post.ID,
	).Scan(&post.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// UpdateMemo sets the memo content and its creation time on a post
func (r *PostgresPostRepository) UpdateMemo(ctx context.Context, postID int64, content string) error {
	query := `
		UPDATE posts
		SET memo = $1, memo_created_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND is_active = true
	`

	tag, err := r.db.Exec(ctx, query, content, postID)
	if err != nil {
		return fmt.Errorf("failed to update memo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeletePost soft-deletes a post owned by the given user
func (r *PostgresPostRepository) DeletePost(ctx context.Context, postID, userID int64) error {
	query := `
		UPDATE posts
		SET is_active = false, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2 AND is_active = true
	`

	tag, err := r.db.Exec(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
