package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minjipark/linkmemo-service/internal/identity"
	"github.com/minjipark/linkmemo-service/internal/model"
	"github.com/minjipark/linkmemo-service/internal/service"
)

// RequireIdentity resolves the caller's identity from the bearer token and
// attaches it as the request principal. Requests without a valid identity are
// rejected before any handler body runs.
func RequireIdentity(tokenService service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := resolvePrincipal(c, tokenService)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Code:    "NOT_AUTHENTICATED",
				Status:  http.StatusText(http.StatusUnauthorized),
				Message: "A valid bearer token is required",
			})
			return
		}

		identity.SetPrincipal(c, principal)
		c.Next()
	}
}

// OptionalIdentity performs the same resolution but lets anonymous requests
// through without a principal. Handlers behind it must handle an anonymous
// caller explicitly.
func OptionalIdentity(tokenService service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal := resolvePrincipal(c, tokenService); principal != nil {
			identity.SetPrincipal(c, principal)
		}

		c.Next()
	}
}

// resolvePrincipal validates the Authorization header and builds the request
// principal, or nil when the request carries no usable identity.
func resolvePrincipal(c *gin.Context, tokenService service.TokenService) *identity.Principal {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}

	claims, err := tokenService.ValidateAccessToken(parts[1])
	if err != nil {
		return nil
	}

	return &identity.Principal{
		UserID: claims.UserID,
		Raw:    claims,
	}
}
