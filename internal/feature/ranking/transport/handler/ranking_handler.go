// Package handler はrankingフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ranking_backend/internal/feature/ranking/domain"
	"ranking_backend/internal/feature/ranking/domain/entity"
	"ranking_backend/internal/feature/ranking/transport/http/dto"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// RankingUsecase はランキング操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type RankingUsecase interface {
	ListRanked(ctx context.Context, page, pageSize int) (*entity.RankedPage, error)
	Search(ctx context.Context, keyword string) (*entity.SearchResult, error)
	Delete(ctx context.Context, characterID string) (*entity.DeleteResult, error)
}

// ErrorObserver は失敗した操作を記録します（メトリクス用）。
type ErrorObserver interface {
	ObserveOperationError(operation, kind string)
}

// RankingHandler はキャラクターランキングのHTTPリクエストを処理します。
type RankingHandler struct {
	uc  RankingUsecase
	obs ErrorObserver
}

// NewRankingHandler はRankingHandlerの新しいインスタンスを生成します。obs は nil でもかまいません。
func NewRankingHandler(uc RankingUsecase, obs ErrorObserver) *RankingHandler {
	return &RankingHandler{uc: uc, obs: obs}
}

// List はランキング順のページを返します。
//
// エンドポイント例:
// GET /api/characters?page=2&pageSize=20
func (h *RankingHandler) List(c *gin.Context) {
	// 未指定・数値でない場合はデフォルト値
	page := queryInt(c, "page", defaultPage)
	pageSize := queryInt(c, "pageSize", defaultPageSize)

	res, err := h.uc.ListRanked(c.Request.Context(), page, pageSize)
	if err != nil {
		h.fail(c, "list", err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Records:     dto.NewCharacterItems(res.Records),
		TotalCount:  res.TotalCount,
		CurrentPage: res.CurrentPage,
		TotalPages:  res.TotalPages,
		HasMore:     res.HasMore,
	})
}

// Search はIDまたは名前にキーワードを含むキャラクターを返します（最大50件）。
//
// エンドポイント例:
// GET /api/characters/search?keyword=hero
func (h *RankingHandler) Search(c *gin.Context) {
	res, err := h.uc.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		h.fail(c, "search", err)
		return
	}

	c.JSON(http.StatusOK, dto.SearchResponse{
		Matches:           dto.NewCharacterItems(res.Matches),
		ReturnedCount:     res.ReturnedCount,
		NormalizedKeyword: res.NormalizedKeyword,
	})
}

// Delete はキャラクターを物理削除します。
//
// エンドポイント例:
// DELETE /api/characters/:characterId
func (h *RankingHandler) Delete(c *gin.Context) {
	id := c.Param("characterId")

	res, err := h.uc.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "delete", err)
		return
	}

	slog.Info("character deleted", "character_id", id, "client_ip", c.ClientIP())
	c.JSON(http.StatusOK, dto.DeleteResponse{Success: res.Success, Message: res.Message})
}

// fail はエラー種別に応じたステータスコードでエラーレスポンスを返します。
// ストア・内部エラーの詳細はログにのみ出力します。
func (h *RankingHandler) fail(c *gin.Context, op string, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.Classify(err).(*domain.Error)
	}

	status := statusFor(de.Kind)
	if h.obs != nil {
		h.obs.ObserveOperationError(op, de.Kind.String())
	}
	if status >= http.StatusInternalServerError {
		slog.Error("ranking operation failed", "operation", op, "kind", de.Kind.String(), "error", err)
	} else {
		slog.Debug("ranking request rejected", "operation", op, "kind", de.Kind.String(), "error", de.Message)
	}

	c.JSON(status, dto.ErrorResponse{Error: de.Message})
}

func statusFor(k domain.Kind) int {
	switch k {
	case domain.KindInvalidArgument:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
