package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "backline/internal/pkg/jwt"
	"backline/internal/pkg/response"
)

// Auth validates the Bearer token and stores user_id and role on the
// context. The websocket handshake cannot set headers, so a token
// query parameter is accepted as a fallback.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing credentials")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// RequireRole aborts with 403 unless the authenticated user carries one
// of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetString("role")
		for _, r := range roles {
			if got == r {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient role")
		c.Abort()
	}
}
