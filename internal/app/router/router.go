// Package router はアプリケーションのginルーターを組み立てます。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	rankinghandler "ranking_backend/internal/feature/ranking/transport/handler"
	"ranking_backend/internal/platform/http/handler"
	"ranking_backend/internal/platform/http/middleware"
	"ranking_backend/internal/platform/metrics"
	"ranking_backend/internal/platform/ratelimit"
)

// Deps はルーターが必要とする依存関係です。
type Deps struct {
	Ranking        *rankinghandler.RankingHandler
	Metrics        *metrics.Metrics
	DeleteLimiter  ratelimit.Limiter
	DB             handler.Pinger
	AllowedOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		d.Metrics.Middleware(),
		corsMiddleware(d.AllowedOrigins),
	)

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Readiness(d.DB))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	api := r.Group("/api/characters")
	{
		api.GET("", d.Ranking.List)
		api.GET("/search", d.Ranking.Search)
		// 削除は取り消せないため、クライアントIPごとに回数を制限する
		api.DELETE("/:characterId", ratelimit.Middleware(d.DeleteLimiter), d.Ranking.Delete)
	}

	return r
}

// corsMiddleware は管理画面からのアクセスを許可します。origins が空の場合は全オリジンを許可します。
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
