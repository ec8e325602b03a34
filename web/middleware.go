package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Ctx = *gin.Context
type Handler = gin.HandlerFunc
type Router = gin.IRouter

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
	loggerKey    = "logger"
)

// RequestID propagates the caller's X-Request-ID or mints one, and stores a
// logger carrying it for handlers to use through Logger.
func RequestID(base *slog.Logger) Handler {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Set(requestIDKey, id)
		c.Set(loggerKey, base.With("req_id", id))
		c.Next()
	}
}

// RequestIDFrom returns the id set by RequestID, empty if absent.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger returns the request-scoped logger, or slog.Default outside
// RequestID.
func Logger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// AccessLog writes one record per request. Unmatched routes log an empty
// route so they stay apart from the modules' own routes.
func AccessLog() Handler {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		Logger(c).Info("request served",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}

// Problem aborts with an RFC 7807 body. The request id is echoed so
// operators can find the matching log lines.
func Problem(c *gin.Context, status int, detail string) {
	c.Header("Content-Type", "application/problem+json")
	c.AbortWithStatusJSON(status, gin.H{
		"type":      "about:blank",
		"title":     http.StatusText(status),
		"status":    status,
		"detail":    detail,
		"instance":  c.Request.URL.Path,
		"requestId": RequestIDFrom(c),
	})
}

// RecoveryProblem converts handler panics to a 500 problem.
func RecoveryProblem() Handler {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				Logger(c).Error("handler panic", "error", rec, "route", c.FullPath())
				Problem(c, http.StatusInternalServerError, "unexpected server error")
			}
		}()
		c.Next()
	}
}

// NoRouteProblem answers paths no enabled module registered.
func NoRouteProblem() Handler {
	return func(c *gin.Context) {
		Problem(c, http.StatusNotFound, "no enabled module serves this path")
	}
}
