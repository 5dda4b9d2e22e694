package middleware

import (
	"strings"

	"chainwork_backend/internal/auth"
	"chainwork_backend/internal/logger"
	"chainwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// UserIDKey is where the authenticated user's ID lives in the gin context.
const UserIDKey = "userID"

// RequireAuth validates the bearer token and stores the user ID in the
// context. Requests without a valid token are rejected with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			abortUnauthorized(c, "Authorization header must be a bearer token")
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	apperrors.HandleError(c, apperrors.NewUnauthorizedError(message))
	c.Abort()
}

// CurrentUserID returns the authenticated user's ID, empty when the route
// is public.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
