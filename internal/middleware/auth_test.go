package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjipark/linkmemo-service/internal/domain"
	"github.com/minjipark/linkmemo-service/internal/identity"
	"github.com/minjipark/linkmemo-service/internal/repository"
	"github.com/minjipark/linkmemo-service/internal/service"
)

type memoryTokenRepo struct {
	mu     sync.Mutex
	tokens map[int64]string
}

func (m *memoryTokenRepo) StoreRefreshToken(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[userID] = token
	return nil
}

func (m *memoryTokenRepo) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[userID]
	if !ok {
		return "", repository.ErrNotFound
	}
	return token, nil
}

func (m *memoryTokenRepo) DeleteRefreshToken(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, userID)
	return nil
}

func setupIdentityRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenService := service.NewTokenService(service.TokenServiceConfig{
		TokenRepo:         &memoryTokenRepo{tokens: make(map[int64]string)},
		Secret:            "test-secret",
		AccessExpiration:  time.Hour,
		RefreshExpiration: 24 * time.Hour,
	})

	pair, err := tokenService.GenerateTokens(context.Background(), &domain.User{ID: 42, Email: "user@example.com"})
	require.NoError(t, err)

	router := gin.New()

	echoPrincipal := func(c *gin.Context) {
		p, err := identity.CurrentPrincipal(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if p == nil {
			c.JSON(http.StatusOK, gin.H{"userId": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID})
	}

	router.GET("/required", RequireIdentity(tokenService), echoPrincipal)
	router.GET("/optional", OptionalIdentity(tokenService), echoPrincipal)

	return router, pair.AccessToken
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireIdentity(t *testing.T) {
	router, accessToken := setupIdentityRouter(t)

	t.Run("valid bearer token reaches the handler with a principal", func(t *testing.T) {
		w := doRequest(router, "/required", "Bearer "+accessToken)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":42}`, w.Body.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := doRequest(router, "/required", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_AUTHENTICATED")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		w := doRequest(router, "/required", "Token "+accessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		w := doRequest(router, "/required", "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalIdentity(t *testing.T) {
	router, accessToken := setupIdentityRouter(t)

	t.Run("valid bearer token attaches the principal", func(t *testing.T) {
		w := doRequest(router, "/optional", "Bearer "+accessToken)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":42}`, w.Body.String())
	})

	t.Run("anonymous request passes through without a principal", func(t *testing.T) {
		w := doRequest(router, "/optional", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":null}`, w.Body.String())
	})

	t.Run("invalid token degrades to anonymous", func(t *testing.T) {
		w := doRequest(router, "/optional", "Bearer expired.or.garbage")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":null}`, w.Body.String())
	})
}
