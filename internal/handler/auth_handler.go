package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minjipark/linkmemo-service/internal/identity"
	"github.com/minjipark/linkmemo-service/internal/model"
	"github.com/minjipark/linkmemo-service/internal/repository"
	"github.com/minjipark/linkmemo-service/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	frontendURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, userService service.UserService, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		frontendURL: frontendURL,
	}
}

// KakaoLogin initiates the Kakao OAuth flow
// @Summary Initiate Kakao OAuth login
// @Description Redirects to the Kakao consent screen
// @Tags auth
// @Produce json
// @Success 302 "Redirect to Kakao OAuth"
// @Router /v1/auth/kakao/login [get]
func (h *AuthHandler) KakaoLogin(c *gin.Context) {
	state, err := generateRandomState()
	if err != nil {
		respondInternalServerError(c, "Failed to generate state")
		return
	}

	// State cookie protects the callback against CSRF
	c.SetCookie("oauth_state", state, 600, "/", "", false, true)

	url := h.authService.GetKakaoLoginURL(state)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// KakaoCallback handles the Kakao OAuth callback
// @Summary Handle Kakao OAuth callback
// @Description Exchanges the authorization code, signs the user in and returns JWT tokens
// @Tags auth
// @Produce json
// @Param code query string true "OAuth authorization code"
// @Param state query string true "OAuth state parameter"
// @Success 200 {object} model.AuthResponse "Authentication successful"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 401 {object} model.ErrorResponse "Provider rejected the login"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/auth/kakao/callback [get]
func (h *AuthHandler) KakaoCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" {
		respondBadRequest(c, "Authorization code is required")
		return
	}

	storedState, err := c.Cookie("oauth_state")
	if err != nil || storedState != state {
		respondBadRequest(c, "Invalid state parameter")
		return
	}

	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	authResponse, err := h.authService.HandleKakaoCallback(c.Request.Context(), code)
	if err != nil {
		logError(c, "kakao_oauth_callback_failed", err, map[string]interface{}{
			"error_type": "oauth_error",
		})
		if errors.Is(err, service.ErrUserNotAuthenticated) {
			respondUnauthorized(c, "Failed to authenticate with Kakao")
			return
		}
		respondInternalServerError(c, "Failed to authenticate with Kakao")
		return
	}

	// API clients get JSON; browsers are sent back to the frontend
	if c.GetHeader("Accept") == "application/json" || c.Query("response_type") == "json" {
		respondOK(c, authResponse)
		return
	}

	redirectURL := fmt.Sprintf("%s/auth/callback?access_token=%s&refresh_token=%s&expires_in=%d",
		h.frontendURL,
		authResponse.AccessToken,
		authResponse.RefreshToken,
		authResponse.ExpiresIn,
	)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

// RefreshToken generates a new token pair from a refresh token
// @Summary Refresh access token
// @Description Rotate the token pair using a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} service.TokenPair "New tokens"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 401 {object} model.ErrorResponse "Invalid refresh token"
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	tokens, err := h.authService.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondUnauthorized(c, "Invalid or expired refresh token")
		return
	}

	respondOK(c, tokens)
}

// Logout revokes the caller's refresh token
// @Summary Logout
// @Description Revoke the current user's refresh token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 204 "Logout successful"
// @Failure 401 {object} model.ErrorResponse "Unauthorized"
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	req := &model.LogoutRequest{}
	if err := identity.Inject(c, req); err != nil {
		respondUnauthorized(c, ErrNotAuthenticated)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), *req.UserID); err != nil {
		logError(c, "logout_failed", err, nil)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondNoContent(c)
}

// GetCurrentUser returns the current authenticated user
// @Summary Get current user
// @Description Get the currently authenticated user's information
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse "User information"
// @Failure 401 {object} model.ErrorResponse "Unauthorized"
// @Router /v1/auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	principal, err := identity.CurrentPrincipal(c)
	if err != nil {
		respondInternalServerError(c, ErrInternalServer)
		return
	}
	if principal == nil {
		respondUnauthorized(c, ErrNotAuthenticated)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, ErrResourceNotFound)
			return
		}
		respondInternalServerError(c, "Failed to get user information")
		return
	}

	respondOK(c, model.UserResponseFromDomain(user))
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.Engine, requireIdentity gin.HandlerFunc) {
	auth := router.Group("/v1/auth")
	{
		auth.GET("/kakao/login", h.KakaoLogin)
		auth.GET("/kakao/callback", h.KakaoCallback)

		auth.POST("/refresh", h.RefreshToken)

		auth.POST("/logout", requireIdentity, h.Logout)
		auth.GET("/me", requireIdentity, h.GetCurrentUser)
	}
}

// generateRandomState generates a random state string for OAuth
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
