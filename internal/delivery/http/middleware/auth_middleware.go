package middleware

import (
	"context"
	"net/http"
	"strings"

	"talent-marketplace-backend/internal/delivery/http/response"
	"talent-marketplace-backend/internal/domain"
	"talent-marketplace-backend/pkg/auth"
	"talent-marketplace-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// AuthMiddleware verifies the bearer token and re-fetches the profile it
// names. The identity attached under the domain keys, on both the gin
// context and the request context, is the one the token was issued for.
func AuthMiddleware(tokens TokenParser, authUC domain.AuthUsecase, secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Access token required")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			secLog.LogUnauthorizedAccess(c.Request.Context(), "", c.ClientIP(), c.GetString(requestIDKey), c.FullPath(), "invalid_token")
			response.Error(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		// The token may outlive the profile.
		profile, err := authUC.GetCurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			secLog.LogUnauthorizedAccess(c.Request.Context(), claims.UserID, c.ClientIP(), c.GetString(requestIDKey), c.FullPath(), "unknown_user")
			response.Error(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		accountType := claims.AccountType

		c.Set(string(domain.KeyUserID), profile.ID)
		c.Set(string(domain.KeyUserEmail), claims.Email)
		c.Set(string(domain.KeyAccountType), accountType)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, profile.ID)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, domain.KeyAccountType, accountType)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AuthorizeRoles lets the request through only for the listed account
// types. It must run after AuthMiddleware.
func AuthorizeRoles(secLog *security.SecurityLogger, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		userID := c.GetString(string(domain.KeyUserID))
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		if !allowed[c.GetString(string(domain.KeyAccountType))] {
			secLog.LogUnauthorizedAccess(c.Request.Context(), userID, c.ClientIP(), c.GetString(requestIDKey), c.FullPath(), "role_mismatch")
			response.Error(c, http.StatusForbidden, "Forbidden")
			c.Abort()
			return
		}

		c.Next()
	}
}

// bearerToken returns the second word of the Authorization header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
