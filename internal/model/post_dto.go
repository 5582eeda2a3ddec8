package model

import (
	"time"

	"github.com/minjipark/linkmemo-service/internal/domain"
)

// Request DTOs carry an unmarshaled body plus the current user id injected
// from the request principal before the service method runs. A nil UserID
// means the caller is anonymous; services that accept anonymous callers
// handle it explicitly.

// CreatePostRequest is the payload for POST /v1/posts
type CreatePostRequest struct {
	URL string `json:"url" binding:"required,url"`

	UserID *int64 `json:"-"`
}

// SetUserID assigns the current user id resolved from the request principal.
func (r *CreatePostRequest) SetUserID(id *int64) {
	r.UserID = id
}

// ListPostsRequest carries pagination for GET /v1/posts
type ListPostsRequest struct {
	Page  int
	Limit int

	UserID *int64 `json:"-"`
}

// SetUserID assigns the current user id resolved from the request principal.
func (r *ListPostsRequest) SetUserID(id *int64) {
	r.UserID = id
}

// GetPostRequest identifies a post for GET /v1/posts/:postId
type GetPostRequest struct {
	PostID int64

	UserID *int64 `json:"-"`
}

// SetUserID assigns the current user id resolved from the request principal.
func (r *GetPostRequest) SetUserID(id *int64) {
	r.UserID = id
}

// UpdatePostRequest is the payload for PATCH /v1/posts/:postId
type UpdatePostRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content"`
	Publish bool     `json:"publish"`
	TagList []string `json:"tagList"`

	PostID int64  `json:"-"`
	UserID *int64 `json:"-"`
}

// SetUserID assigns the current user id resolved from the request principal.
func (r *UpdatePostRequest) SetUserID(id *int64) {
	r.UserID = id
}

// DeletePostRequest identifies a post for DELETE /v1/posts/:postId
type DeletePostRequest struct {
	PostID int64

	UserID *int64 `json:"-"`
}

// SetUserID assigns the current user id resolved from the request principal.
func (r *DeletePostRequest) SetUserID(id *int64) {
	r.UserID = id
}

// CreateUpdateMemoRequest is the payload for PUT /v1/posts/:postId/memos
type CreateUpdateMemoRequest struct {
	Content string `json:"content" binding:"required"`

	PostID int64  `json:"-"`
	UserID *int64 `json:"-"`
}

// SetUserID assigns the current user id resolved from the request principal.
func (r *CreateUpdateMemoRequest) SetUserID(id *int64) {
	r.UserID = id
}

// PostListItemResponse is one row of the post list
type PostListItemResponse struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	CreatedAt string   `json:"createdAt"`
	TagList   []string `json:"tagList"`
}

// PostListResponse represents a paginated list of posts
type PostListResponse struct {
	Data       []PostListItemResponse `json:"data"`
	Pagination PaginationResponse     `json:"pagination"`
}

// PostDetailResponse represents a single post with tags and memo
type PostDetailResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	URL           string   `json:"url"`
	Status        string   `json:"status"`
	TagList       []string `json:"tagList"`
	CreatedAt     string   `json:"createdAt"`
	MemoContent   string   `json:"memoContent,omitempty"`
	MemoCreatedAt string   `json:"memoCreatedAt,omitempty"`
}

// CreatePostResponse carries the id of a newly summarized post
type CreatePostResponse struct {
	PostID int64 `json:"postId"`
}

const postDateLayout = "2006-01-02 15:04"

// PostListItemFromDomain converts a domain post and its tag names to a list row
func PostListItemFromDomain(post *domain.Post, tagNames []string) PostListItemResponse {
	return PostListItemResponse{
		ID:        post.ID,
		Title:     post.Title,
		CreatedAt: post.CreatedAt.Format(postDateLayout),
		TagList:   tagNames,
	}
}

// PostDetailFromDomain converts a domain post and its tag names to a detail response
func PostDetailFromDomain(post *domain.Post, tagNames []string) *PostDetailResponse {
	detail := &PostDetailResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		URL:         post.URL,
		Status:      string(post.Status),
		TagList:     tagNames,
		CreatedAt:     post.CreatedAt.Format(postDateLayout),
		MemoContent:   post.Memo,
		MemoCreatedAt: formatMemoTime(post.MemoCreatedAt),
	}
	return detail
}

// formatMemoTime renders an unset memo time as absent, not the zero time
func formatMemoTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(postDateLayout)
}
