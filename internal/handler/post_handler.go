package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/minjipark/linkmemo-service/internal/identity"
	"github.com/minjipark/linkmemo-service/internal/model"
	"github.com/minjipark/linkmemo-service/internal/repository"
	"github.com/minjipark/linkmemo-service/internal/service"
)

// PostHandler handles bookmark post HTTP requests
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePost summarizes a URL and stores it as a temp post
// @Summary Bookmark a URL
// @Description Summarize the URL and store it as a temp post. Works for anonymous callers too.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body model.CreatePostRequest true "URL to bookmark"
// @Success 201 {object} model.CreatePostResponse "Post created"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	req := &model.CreatePostRequest{}
	if err := bindJSON(c, req); err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("url", "a valid url is required"))
		return
	}

	if err := identity.InjectOptional(c, req); err != nil {
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	resp, err := h.postService.CreatePost(c.Request.Context(), req)
	if err != nil {
		logError(c, "failed_to_create_post", err, map[string]interface{}{
			"url": req.URL,
		})
		respondInternalServerError(c, ErrSummarization)
		return
	}

	respondCreated(c, resp)
}

// ListPosts returns the caller's posts, newest first
// @Summary List posts
// @Description List the current user's posts with their tags
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} model.PostListResponse "Posts"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 401 {object} model.ErrorResponse "Unauthorized"
// @Router /v1/posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, err := getQueryInt(c, "page", 1)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams)
		return
	}
	limit, err := getQueryInt(c, "limit", 10)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams)
		return
	}
	if err := validatePagination(page, limit); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	req := &model.ListPostsRequest{Page: page, Limit: limit}
	if err := identity.Inject(c, req); err != nil {
		respondUnauthorized(c, ErrNotAuthenticated)
		return
	}

	resp, err := h.postService.ListPosts(c.Request.Context(), req)
	if err != nil {
		logError(c, "failed_to_list_posts", err, nil)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, resp)
}

// GetPost returns one of the caller's posts
// @Summary Get post detail
// @Description Get one post with its tags and memo
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} model.PostDetailResponse "Post detail"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 401 {object} model.ErrorResponse "Unauthorized"
// @Failure 404 {object} model.ErrorResponse "Post not found"
// @Router /v1/posts/{postId} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := getPathParamInt64(c, "postId")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	req := &model.GetPostRequest{PostID: postID}
	if err := identity.Inject(c, req); err != nil {
		respondUnauthorized(c, ErrNotAuthenticated)
		return
	}

	resp, err := h.postService.GetPostDetail(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, ErrResourceNotFound)
			return
		}
		logError(c, "failed_to_get_post", err, map[string]interface{}{
			"post_id": postID,
		})
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, resp)
}

// UpdatePost edits a post, replaces its tags, and optionally publishes it
// @Summary Update post
// @Description Edit title, content and tags; publish a temp post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Param request body model.UpdatePostRequest true "Post fields"
// @Success 204 "Post updated"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 401 {object} model.ErrorResponse "Unauthorized"
// @Failure 404 {object} model.ErrorResponse "Post not found"
// @Router /v1/posts/{postId} [patch]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, err := getPathParamInt64(c, "postId")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	req := &model.UpdatePostRequest{}
	if err := bindJSON(c, req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}
	req.PostID = postID

	if err := identity.Inject(c, req); err != nil {
		respondUnauthorized(c, ErrNotAuthenticated)
		return
	}

	if err := h.postService.UpdatePost(c.Request.Context(), req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, ErrResourceNotFound)
			return
		}
		logError(c, "failed_to_update_post", err, map[string]interface{}{
			"post_id": postID,
		})
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondNoContent(c)
}

// DeletePost soft-deletes a post
// @Summary Delete post
// @Description Soft-delete one of the current user's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 204 "Post deleted"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 401 {object} model.ErrorResponse "Unauthorized"
// @Failure 404 {object} model.ErrorResponse "Post not found"
// @Router /v1/posts/{postId} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, err := getPathParamInt64(c, "postId")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	req := &model.DeletePostRequest{PostID: postID}
	if err := identity.Inject(c, req); err != nil {
		respondUnauthorized(c, ErrNotAuthenticated)
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, ErrResourceNotFound)
			return
		}
		logError(c, "failed_to_delete_post", err, map[string]interface{}{
			"post_id": postID,
		})
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondNoContent(c)
}

// RegisterRoutes registers post routes. Creation tolerates anonymous callers;
// everything else requires an identity.
func (h *PostHandler) RegisterRoutes(router *gin.Engine, requireIdentity, optionalIdentity gin.HandlerFunc) {
	posts := router.Group("/v1/posts")
	{
		posts.POST("", optionalIdentity, h.CreatePost)
		posts.GET("", requireIdentity, h.ListPosts)
		posts.GET("/:postId", requireIdentity, h.GetPost)
		posts.PATCH("/:postId", requireIdentity, h.UpdatePost)
		posts.DELETE("/:postId", requireIdentity, h.DeletePost)
	}
}
