// Package di はアプリケーションのコンポーネントを組み立てるファクトリを提供します。
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ranking_backend/internal/feature/ranking/adapters"
	"ranking_backend/internal/feature/ranking/transport/handler"
	"ranking_backend/internal/feature/ranking/usecase"
	"ranking_backend/internal/platform/metrics"
	"ranking_backend/internal/platform/ratelimit"
)

const deleteLimiterPrefix = "ratelimit:delete"

// NewRankingHandler はリポジトリ、ユースケース、ハンドラーを組み立てます。
func NewRankingHandler(db *gorm.DB, m *metrics.Metrics) *handler.RankingHandler {
	repo := adapters.NewCharacterRepository(db)
	uc := usecase.NewRankingUsecase(repo)
	return handler.NewRankingHandler(uc, m)
}

// NewImportUsecase はインポート用のユースケースを組み立てます。
func NewImportUsecase(db *gorm.DB) *usecase.ImportUsecase {
	return usecase.NewImportUsecase(adapters.NewCharacterRepository(db))
}

// NewDeleteLimiter は削除APIのレートリミッタを生成します。
// Redisが利用可能な場合はインスタンス間で共有するRedis実装を返し、
// そうでない場合はプロセス内の実装にフォールバックします。
func NewDeleteLimiter(rdb *redis.Client, limit int, window time.Duration) ratelimit.Limiter {
	if rdb != nil {
		return ratelimit.NewRedisLimiter(rdb, deleteLimiterPrefix, limit, window)
	}
	return ratelimit.NewMemoryLimiter(limit, window)
}
