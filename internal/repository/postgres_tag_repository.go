package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTagRepository implements TagRepository using PostgreSQL
type PostgresTagRepository struct {
	db *pgxpool.Pool
}

// NewPostgresTagRepository creates a new PostgreSQL tag repository
func NewPostgresTagRepository(db *pgxpool.Pool) TagRepository {
	return &PostgresTagRepository{db: db}
}

// GetTagNamesByPostID retrieves the tag names attached to one post
func (r *PostgresTagRepository) GetTagNamesByPostID(ctx context.Context, postID int64) ([]string, error) {
	query := `SELECT name FROM tags WHERE post_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		names = append(names, name)
	}

	return names, nil
}

// GetTagNamesByPostIDs retrieves tag names for a set of posts, grouped by post id
func (r *PostgresTagRepository) GetTagNamesByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	tagMap := make(map[int64][]string)
	if len(postIDs) == 0 {
		return tagMap, nil
	}

	query := `SELECT post_id, name FROM tags WHERE post_id = ANY($1) ORDER BY post_id, id`

	rows, err := r.db.Query(ctx, query, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var name string
		if err := rows.Scan(&postID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tagMap[postID] = append(tagMap[postID], name)
	}

	return tagMap, nil
}

// ReplacePostTags replaces all tags on a post with the given names
func (r *PostgresTagRepository) ReplacePostTags(ctx context.Context, postID int64, names []string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to clear tags: %w", err)
	}

	for _, name := range names {
		if _, err := r.db.Exec(ctx, `INSERT INTO tags (post_id, name) VALUES ($1, $2)`, postID, name); err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
	}

	return nil
}
