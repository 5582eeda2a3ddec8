package repository

import (
	"context"

	"github.com/minjipark/linkmemo-service/internal/domain"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPostByID(ctx context.Context, postID int64) (*domain.Post, error)
	GetPostByIDAndUserID(ctx context.Context, postID, userID int64) (*domain.Post, error)
	GetActivePublishedPost(ctx context.Context, postID, userID int64) (*domain.Post, error)
	ListPostsByUserID(ctx context.Context, userID int64, filter domain.PostFilter) ([]domain.Post, int, error)
	UpdatePost(ctx context.Context, post *domain.Post) error
	UpdateMemo(ctx context.Context, postID int64, content string) error
	DeletePost(ctx context.Context, postID, userID int64) error
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	GetTagNamesByPostID(ctx context.Context, postID int64) ([]string, error)
	GetTagNamesByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]string, error)
	ReplacePostTags(ctx context.Context, postID int64, names []string) error
}
