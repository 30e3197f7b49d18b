package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docchat-backend/internal/chat"
	"docchat-backend/internal/documents"
	"docchat-backend/internal/ingest"
	"docchat-backend/internal/shared/config"
	"docchat-backend/internal/shared/server/middleware"
	"docchat-backend/internal/shared/server/respond"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Config           config.Config
	Docs             *documents.Store
	AIAvailable      bool
	DocumentsHandler *documents.Handler
	IngestHandler    *ingest.Handler
	ChatHandler      *chat.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"status":      "healthy",
			"server":      "Document Analysis API",
			"aiAvailable": deps.AIAvailable,
			"timestamp":   time.Now().UTC(),
			"documents":   deps.Docs.Len(),
		})
	})

	deps.DocumentsHandler.RegisterRoutes(api)
	deps.IngestHandler.RegisterRoutes(api)
	deps.ChatHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3002"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
