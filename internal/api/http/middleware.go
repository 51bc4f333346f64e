package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerRequestID = "X-Request-Id"
	headerSessionID = "X-Session-Id"

	ctxKeyRequestID = "request_id"
	ctxKeySessionID = "session_id"
)

type requestIDKey struct{}

// RequestLogger assigns every request an id and logs method, path, status and latency.
// An incoming X-Request-Id is reused.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(headerRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(ctxKeyRequestID, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, rid))
		c.Writer.Header().Set(headerRequestID, rid)

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if sid := c.GetString(ctxKeySessionID); sid != "" {
			fields = append(fields, zap.String("session", sid))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("HTTP request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("HTTP request", fields...)
		default:
			logger.Info("HTTP request", fields...)
		}
	}
}

// GetRequestID extracts the request id stored by RequestLogger.
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// SessionMiddleware resolves the caller's session id from the cookie or the X-Session-Id header.
// Callers without a valid id get a fresh one. The id is always echoed back.
func SessionMiddleware(cfg SessionConfig) gin.HandlerFunc {
	maxAge := int(cfg.TTL / time.Second)

	return func(c *gin.Context) {
		sid := ""
		if cookie, err := c.Cookie(cfg.CookieName); err == nil && isSessionID(cookie) {
			sid = cookie
		} else if header := strings.TrimSpace(c.GetHeader(headerSessionID)); isSessionID(header) {
			sid = header
		}
		if sid == "" {
			sid = uuid.NewString()
		}

		c.Set(ctxKeySessionID, sid)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, sid, maxAge, "/", "", cfg.Secure, true)
		c.Writer.Header().Set(headerSessionID, sid)

		c.Next()
	}
}

func isSessionID(value string) bool {
	if value == "" {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxKeySessionID)
}
