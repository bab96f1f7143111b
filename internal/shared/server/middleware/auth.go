package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"content-backend/internal/shared/auth"
	"content-backend/internal/shared/server/respond"
)

const (
	userIDKey      = "userId"
	userNameKey    = "userName"
	userEmailKey   = "userEmail"
	authPathPrefix = "/api/v1/auth/"
	healthPath     = "/api/v1/health"
	metricsPath    = "/api/v1/metrics"
)

// Auth validates JWTs and stores identity in context. Signup/login,
// health, and metrics endpoints pass through unauthenticated.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, authPathPrefix) || path == healthPath || path == metricsPath {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.Sub)
		if claims.Username != "" {
			c.Set(userNameKey, claims.Username)
		}
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
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
