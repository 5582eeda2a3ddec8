package domain

import (
	"time"
)

// PostStatus indicates the lifecycle stage of a post.
type PostStatus string

const (
	// PostStatusTemp is a freshly summarized post that has not been saved yet.
	PostStatusTemp PostStatus = "temp"
	// PostStatusPublished is a post the user has saved to their archive.
	PostStatusPublished PostStatus = "published"
)

// Post represents a bookmarked URL with its AI-generated summary and an
// optional memo written by the owner.
type Post struct {
	ID            int64      `json:"id"`
	UserID        *int64     `json:"userId,omitempty"` // nil for anonymous temp posts
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Content       string     `json:"content"` // AI-generated summary
	Memo          string     `json:"memo,omitempty"`
	MemoCreatedAt *time.Time `json:"memoCreatedAt,omitempty"`
	Status        PostStatus `json:"status"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Tag is a label attached to a post.
type Tag struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostFilter represents filters for querying posts
type PostFilter struct {
	Page  int
	Limit int
}
