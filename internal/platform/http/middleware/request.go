// Package middleware はリクエストIDとアクセスログのginミドルウェアを提供します。
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// RequestID はリクエストIDを割り当てます。
// クライアントが X-Request-ID を送った場合はそれを引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		c.Set(ctxRequestID, rid)
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

// GetRequestID はコンテキストに保存されたリクエストIDを返します。
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// AccessLog はリクエストごとに1行のアクセスログをslogで出力します。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			slog.Error("request", attrs...)
		case status >= 400:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	}
}
