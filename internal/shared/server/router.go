package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"content-backend/internal/contents"
	"content-backend/internal/shared/config"
	"content-backend/internal/shared/metrics"
	"content-backend/internal/shared/server/middleware"
	"content-backend/internal/shared/server/respond"
	"content-backend/internal/users"
)

// RouterDeps carries the handlers wired into the router.
type RouterDeps struct {
	Config          config.Config
	UsersHandler    *users.Handler
	ContentsHandler *contents.Handler
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.ContentsHandler != nil {
		deps.ContentsHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
