package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/minjipark/linkmemo-service/internal/identity"
	"github.com/minjipark/linkmemo-service/internal/model"
	"github.com/minjipark/linkmemo-service/internal/repository"
	"github.com/minjipark/linkmemo-service/internal/service"
)

// MemoHandler handles memo HTTP requests
type MemoHandler struct {
	memoService service.MemoService
}

// NewMemoHandler creates a new memo handler
func NewMemoHandler(memoService service.MemoService) *MemoHandler {
	return &MemoHandler{memoService: memoService}
}

// UpsertMemo creates or replaces the memo on a published post
// @Summary Create or update memo
// @Description Write the memo on one of the current user's published posts
// @Tags memos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Param request body model.CreateUpdateMemoRequest true "Memo content"
// @Success 204 "Memo saved"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 401 {object} model.ErrorResponse "Unauthorized"
// @Failure 404 {object} model.ErrorResponse "Post not found"
// @Router /v1/posts/{postId}/memos [put]
func (h *MemoHandler) UpsertMemo(c *gin.Context) {
	postID, err := getPathParamInt64(c, "postId")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	req := &model.CreateUpdateMemoRequest{}
	if err := bindJSON(c, req); err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("content", "content is required"))
		return
	}
	req.PostID = postID

	if err := identity.Inject(c, req); err != nil {
		respondUnauthorized(c, ErrNotAuthenticated)
		return
	}

	if err := h.memoService.CreateOrUpdateMemo(c.Request.Context(), req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, ErrResourceNotFound)
			return
		}
		logError(c, "failed_to_save_memo", err, map[string]interface{}{
			"post_id": postID,
		})
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondNoContent(c)
}

// RegisterRoutes registers memo routes
func (h *MemoHandler) RegisterRoutes(router *gin.Engine, requireIdentity gin.HandlerFunc) {
	router.PUT("/v1/posts/:postId/memos", requireIdentity, h.UpsertMemo)
}
