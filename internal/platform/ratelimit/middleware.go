package ratelimit

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware はクライアントIPごとにリクエストを制限するginミドルウェアを返します。
// Limiter がエラーを返した場合はリクエストを通します。
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ok, err := l.Allow(c.Request.Context(), ip)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "client_ip", ip, "error", err)
			c.Next()
			return
		}
		if !ok {
			slog.Info("rate limit exceeded", "client_ip", ip, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
