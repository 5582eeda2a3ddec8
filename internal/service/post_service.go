package service

import (
	"context"
	"fmt"

	"github.com/minjipark/linkmemo-service/internal/domain"
	"github.com/minjipark/linkmemo-service/internal/model"
	"github.com/minjipark/linkmemo-service/internal/repository"
)

// Summarizer produces a title and summary for a URL.
type Summarizer interface {
	Summarize(ctx context.Context, url string) (title string, summary string, err error)
}

// PostService handles post operations
type PostService interface {
	CreatePost(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error)
	ListPosts(ctx context.Context, req *model.ListPostsRequest) (*model.PostListResponse, error)
	GetPostDetail(ctx context.Context, req *model.GetPostRequest) (*model.PostDetailResponse, error)
	UpdatePost(ctx context.Context, req *model.UpdatePostRequest) error
	DeletePost(ctx context.Context, req *model.DeletePostRequest) error
}

type postService struct {
	postRepo   repository.PostRepository
	tagRepo    repository.TagRepository
	summarizer Summarizer
}

// NewPostService creates a new post service
func NewPostService(
	postRepo repository.PostRepository,
	tagRepo repository.TagRepository,
	summarizer Summarizer,
) PostService {
	return &postService{
		postRepo:   postRepo,
		tagRepo:    tagRepo,
		summarizer: summarizer,
	}
}

// CreatePost summarizes the URL and persists a temp post. Anonymous callers
// are allowed: the post is created without an owner and can be claimed when
// the caller saves it after logging in.
func (s *postService) CreatePost(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error) {
	title, summary, err := s.summarizer.Summarize(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		UserID:   req.UserID,
		Title:    title,
		URL:      req.URL,
		Content:  summary,
		Status:   domain.PostStatusTemp,
		IsActive: true,
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	return &model.CreatePostResponse{PostID: post.ID}, nil
}

// ListPosts returns the caller's posts with their tag names, newest first
func (s *postService) ListPosts(ctx context.Context, req *model.ListPostsRequest) (*model.PostListResponse, error) {
	if req.UserID == nil {
		return nil, fmt.Errorf("list posts requires an authenticated user")
	}

	filter := domain.PostFilter{Page: req.Page, Limit: req.Limit}
	posts, total, err := s.postRepo.ListPostsByUserID(ctx, *req.UserID, filter)
	if err != nil {
		return nil, err
	}

	postIDs := make([]int64, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	tagMap, err := s.tagRepo.GetTagNamesByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	items := make([]model.PostListItemResponse, 0, len(posts))
	for i := range posts {
		items = append(items, model.PostListItemFromDomain(&posts[i], tagMap[posts[i].ID]))
	}

	totalPages := 0
	if req.Limit > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}

	return &model.PostListResponse{
		Data: items,
		Pagination: model.PaginationResponse{
			TotalItems:  total,
			TotalPages:  totalPages,
			CurrentPage: req.Page,
			Limit:       req.Limit,
		},
	}, nil
}

// GetPostDetail returns one of the caller's posts with tags and memo
func (s *postService) GetPostDetail(ctx context.Context, req *model.GetPostRequest) (*model.PostDetailResponse, error) {
	if req.UserID == nil {
		return nil, fmt.Errorf("post detail requires an authenticated user")
	}

	post, err := s.postRepo.GetPostByIDAndUserID(ctx, req.PostID, *req.UserID)
	if err != nil {
		return nil, err
	}

	tagNames, err := s.tagRepo.GetTagNamesByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return model.PostDetailFromDomain(post, tagNames), nil
}

// UpdatePost edits the caller's post and replaces its tags. Publishing a temp
// post turns it into a saved archive entry.
func (s *postService) UpdatePost(ctx context.Context, req *model.UpdatePostRequest) error {
	if req.UserID == nil {
		return fmt.Errorf("post update requires an authenticated user")
	}

	post, err := s.postRepo.GetPostByIDAndUserID(ctx, req.PostID, *req.UserID)
	if err != nil {
		return err
	}

	post.Title = req.Title
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Publish {
		post.Status = domain.PostStatusPublished
	}

	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		return err
	}

	if req.TagList != nil {
		if err := s.tagRepo.ReplacePostTags(ctx, post.ID, req.TagList); err != nil {
			return err
		}
	}

	return nil
}

// DeletePost soft-deletes the caller's post
func (s *postService) DeletePost(ctx context.Context, req *model.DeletePostRequest) error {
	if req.UserID == nil {
		return fmt.Errorf("post delete requires an authenticated user")
	}

	return s.postRepo.DeletePost(ctx, req.PostID, *req.UserID)
}
