package service

import (
	"context"
	"fmt"

	"github.com/minjipark/linkmemo-service/internal/model"
	"github.com/minjipark/linkmemo-service/internal/repository"
)

// MemoService handles memo operations on posts
type MemoService interface {
	CreateOrUpdateMemo(ctx context.Context, req *model.CreateUpdateMemoRequest) error
}

type memoService struct {
	postRepo repository.PostRepository
}

// NewMemoService creates a new memo service
func NewMemoService(postRepo repository.PostRepository) MemoService {
	return &memoService{postRepo: postRepo}
}

// CreateOrUpdateMemo writes the memo on an activated, published post owned by
// the caller. Temp posts cannot carry memos.
func (s *memoService) CreateOrUpdateMemo(ctx context.Context, req *model.CreateUpdateMemoRequest) error {
	if req.UserID == nil {
		return fmt.Errorf("memo requires an authenticated user")
	}

	post, err := s.postRepo.GetActivePublishedPost(ctx, req.PostID, *req.UserID)
	if err != nil {
		return err
	}

	return s.postRepo.UpdateMemo(ctx, post.ID, req.Content)
}
