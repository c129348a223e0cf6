// Package adapters はrankingフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ranking_backend/internal/feature/ranking/domain"
	"ranking_backend/internal/feature/ranking/domain/entity"
	"ranking_backend/internal/feature/ranking/usecase"
)

// rankOrder はランキングの並び順です。exp が NULL の行は 0 として扱い、
// 最後に主キーで並べてページ間で順序が揺れないようにします。
const rankOrder = "level DESC, COALESCE(exp, 0) DESC, id ASC"

// characterPostgres はCharacterRepositoryとCharacterWriterのGORM実装です。
// 本番ではPostgreSQL、テストとローカル実行ではSQLiteで動作します。
type characterPostgres struct {
	db *gorm.DB
}

var (
	_ usecase.CharacterRepository = (*characterPostgres)(nil)
	_ usecase.CharacterWriter     = (*characterPostgres)(nil)
)

// NewCharacterRepository は指定されたDB接続でcharacterPostgresの新しいインスタンスを生成します。
func NewCharacterRepository(db *gorm.DB) *characterPostgres {
	return &characterPostgres{db: db}
}

// storeErr はストア由来のエラーであることを示すためにラップします。
func storeErr(op string, err error) error {
	return &domain.StoreError{Op: op, Err: err}
}

// Count は全レコード数を返します。
func (r *characterPostgres) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Character{}).Count(&n).Error; err != nil {
		return 0, storeErr("count", err)
	}
	return n, nil
}

// FindPage はランキング順に offset 件スキップして最大 limit 件を返します。
func (r *characterPostgres) FindPage(ctx context.Context, offset, limit int) ([]entity.Character, error) {
	var out []entity.Character
	if err := r.db.WithContext(ctx).
		Order(rankOrder).
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, storeErr("find page", err)
	}
	return out, nil
}

// searchCond は列とパターンの両方をDB側の LOWER() で揃えて比較します。
// PostgreSQL の LOWER() はUnicodeを畳み込みますが、SQLite はASCIIのみです。
// そのためSQLiteでは非ASCIIの大文字小文字違いは一致しません（同じ表記なら一致します）。
const searchCond = `LOWER(character_id) LIKE LOWER(?) ESCAPE '\' OR LOWER(name) LIKE LOWER(?) ESCAPE '\'`

// SearchByKeyword はIDまたは名前に keyword を部分一致で含むレコードを返します。
// keyword 中の % と _ はワイルドカードではなく文字として扱います。
func (r *characterPostgres) SearchByKeyword(ctx context.Context, keyword string, limit int) ([]entity.Character, error) {
	pattern := "%" + escapeLike(keyword) + "%"

	var out []entity.Character
	if err := r.db.WithContext(ctx).
		Where(searchCond, pattern, pattern).
		Order(rankOrder).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, storeErr("search", err)
	}
	return out, nil
}

// FindByCharacterID はIDが完全一致するレコードを返します。
// 存在しない場合、domain.ErrCharacterNotFoundを返します。
func (r *characterPostgres) FindByCharacterID(ctx context.Context, characterID string) (*entity.Character, error) {
	var c entity.Character
	if err := r.db.WithContext(ctx).Where("character_id = ?", characterID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, storeErr("find by character id", err)
	}
	return &c, nil
}

// DeleteByCharacterID はレコードを物理削除します。
func (r *characterPostgres) DeleteByCharacterID(ctx context.Context, characterID string) error {
	result := r.db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Delete(&entity.Character{})
	if result.Error != nil {
		return storeErr("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

// UpsertBatch は character_id が衝突した場合に既存行を更新します。
func (r *characterPostgres) UpsertBatch(ctx context.Context, characters []entity.Character) error {
	if len(characters) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "character_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "level", "job_name", "job_code", "money", "play_time", "exp", "updated_at",
		}),
	}).Create(&characters).Error
	if err != nil {
		return storeErr("upsert", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike はLIKEパターンのメタ文字をエスケープします。
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
