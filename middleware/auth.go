package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tempobudget/budget-api/auth"
)

const userIDKey = "user_id"

// AuthMiddleware requires a valid `Authorization: Bearer <token>` header.
// A missing header, a wrong scheme and a bad token all produce the same 401
// so the response does not reveal which check failed.
func AuthMiddleware(codec *auth.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		userID, err := codec.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user ID set by AuthMiddleware, or an
// empty string on an unauthenticated request.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
