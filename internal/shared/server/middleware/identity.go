package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"planner-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// Identity reads the caller identity from the X-User-Id header and stores
// it in context. In dev the header may be omitted and a fixed local user
// is assumed.
func Identity(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			if env != "dev" && env != "local" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
				return
			}
			userID = "local-dev"
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
