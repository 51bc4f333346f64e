package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kapu/social-growth-advisor/internal/view"
	"go.uber.org/zap"
)

// Page handles GET /.
func (h *Handler) Page(c *gin.Context) {
	state, err := h.sessions.State(c.Request.Context(), sessionID(c))
	if err != nil {
		respondPageError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := view.Render(c.Writer, view.NewPageData(state)); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		respondPageError(c, err)
	}
}

// SessionState handles GET /api/v1/session.
func (h *Handler) SessionState(c *gin.Context) {
	state, err := h.sessions.State(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
