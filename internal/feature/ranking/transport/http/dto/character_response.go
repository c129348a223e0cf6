package dto

import (
	"time"

	"ranking_backend/internal/feature/ranking/domain/entity"
)

// CharacterItem はキャラクター1件のレスポンスDTOです。未設定の項目は null になります。
type CharacterItem struct {
	CharacterID string    `json:"characterId"`
	Name        string    `json:"name"`
	Level       int       `json:"level"`
	JobName     *string   `json:"jobName"`
	JobCode     *int      `json:"jobCode"`
	Money       *int64    `json:"money"`
	PlayTime    *int64    `json:"playTime"` // 累計プレイ時間
	Exp         *int64    `json:"exp"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListResponse はランキング一覧のレスポンスDTOです。
type ListResponse struct {
	Records     []CharacterItem `json:"records"`
	TotalCount  int64           `json:"totalCount"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
	HasMore     bool            `json:"hasMore"`
}

// SearchResponse はキーワード検索のレスポンスDTOです。
type SearchResponse struct {
	Matches           []CharacterItem `json:"matches"`
	ReturnedCount     int             `json:"returnedCount"`
	NormalizedKeyword string          `json:"normalizedKeyword"`
}

// DeleteResponse は削除結果のレスポンスDTOです。
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewCharacterItem はエンティティをレスポンスDTOに変換します。内部の主キーは含めません。
func NewCharacterItem(c entity.Character) CharacterItem {
	return CharacterItem{
		CharacterID: c.CharacterID,
		Name:        c.Name,
		Level:       c.Level,
		JobName:     c.JobName,
		JobCode:     c.JobCode,
		Money:       c.Money,
		PlayTime:    c.PlayTime,
		Exp:         c.Exp,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
}

// NewCharacterItems はスライスを変換します。結果は空でも nil になりません。
func NewCharacterItems(cs []entity.Character) []CharacterItem {
	out := make([]CharacterItem, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCharacterItem(c))
	}
	return out
}
