package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	GinMode        string
	AllowedOrigins []string
	Session        SessionConfig
}

// NewRouter wires middleware and every route onto a fresh engine.
func NewRouter(cfg RouterConfig, handler *Handler, health *HealthHandler, logger *zap.Logger) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", headerRequestID, headerSessionID},
			ExposeHeaders:    []string{headerRequestID, headerSessionID},
			AllowCredentials: true,
		}))
	}

	health.RegisterRoutes(r)

	app := r.Group("/")
	app.Use(SessionMiddleware(cfg.Session))
	app.GET("/", handler.Page)
	app.POST("/generate", handler.SubmitGenerate)
	app.POST("/fetch-account", handler.SubmitFetchAccount)

	api := r.Group("/api/v1")
	api.Use(SessionMiddleware(cfg.Session))
	api.POST("/suggestions", handler.CreateSuggestions)
	api.POST("/accounts/fetch", handler.FetchAccount)
	api.GET("/session", handler.SessionState)

	return r
}
