package handler

import (
	"strings"

	"chatmate/backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key under which the verified identity of
// the caller is stored for downstream handlers.
const userIDKey = "userID"

// RequireAuth verifies the Bearer token and stores the verified user ID
// in the request context. Mutating routes never trust a client-supplied
// identity; this is the only source of the acting user.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortError(c, apperrors.ErrMissingToken)
			return
		}

		userID, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "), []byte(h.Cfg.JWTSecret))
		if err != nil {
			abortError(c, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID returns the identity stored by RequireAuth.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
