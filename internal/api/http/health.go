package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Service      string    `json:"service"`
	Version      string    `json:"version"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	SessionStore string    `json:"sessionStore"`
	Store        string    `json:"store"`
}

// StorePinger reports whether session storage is reachable.
type StorePinger interface {
	Ping(ctx context.Context) error
	Kind() string
}

// ProviderInfo names the configured AI backend.
type ProviderInfo interface {
	ProviderName() string
	DefaultModel() string
}

type HealthHandler struct {
	serviceName string
	version     string
	provider    ProviderInfo
	store       StorePinger
}

func NewHealthHandler(serviceName, version string, provider ProviderInfo, store StorePinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		provider:    provider,
		store:       store,
	}
}

// HealthCheck reports configuration and store reachability. It never calls the AI provider.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Store:     "disabled",
	}
	if h.provider != nil {
		resp.Provider = h.provider.ProviderName()
		resp.Model = h.provider.DefaultModel()
	}

	if h.store != nil {
		resp.SessionStore = h.store.Kind()

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.store.Ping(pingCtx); err != nil {
			resp.Store = "down"
			resp.Status = "degraded"
		} else {
			resp.Store = "up"
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
