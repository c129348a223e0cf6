// Package usecase はrankingフィーチャーのビジネスロジックを実装します。
// 入力検証はすべてストアへのアクセス前に行い、最初に失敗したルールで即座に返します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"ranking_backend/internal/feature/ranking/domain"
	"ranking_backend/internal/feature/ranking/domain/entity"
)

// CharacterRepository はキャラクターテーブルへの読み取り・削除を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CharacterRepository interface {
	// Count は全レコード数を返します。
	Count(ctx context.Context) (int64, error)

	// FindPage はランキング順（level DESC, exp DESC）に offset 件スキップして最大 limit 件を返します。
	FindPage(ctx context.Context, offset, limit int) ([]entity.Character, error)

	// SearchByKeyword はIDまたは名前に keyword を含むレコードをランキング順に最大 limit 件返します。
	// 大文字小文字は区別しません。
	SearchByKeyword(ctx context.Context, keyword string, limit int) ([]entity.Character, error)

	// FindByCharacterID はIDが完全一致するレコードを返します。
	// 存在しない場合は domain.ErrCharacterNotFound を返します。
	FindByCharacterID(ctx context.Context, characterID string) (*entity.Character, error)

	// DeleteByCharacterID はレコードを物理削除します。
	// 削除対象が無かった場合は domain.ErrCharacterNotFound を返します。
	DeleteByCharacterID(ctx context.Context, characterID string) error
}

// RankingUsecase はランキング一覧・検索・削除のビジネスロジックを提供します。
// リクエスト間で状態を持たず、すべての操作はストアへ問い合わせます。
type RankingUsecase struct {
	repo CharacterRepository
}

// NewRankingUsecase はRankingUsecaseの新しいインスタンスを生成します。
func NewRankingUsecase(repo CharacterRepository) *RankingUsecase {
	return &RankingUsecase{repo: repo}
}

// ListRanked はランキング順のページを返します。
//
// 総件数が0の場合はページ番号に関わらず空のページを返します。
// page が総ページ数を超える場合は NotFound を返します（丸めません）。
func (u *RankingUsecase) ListRanked(ctx context.Context, page, pageSize int) (*entity.RankedPage, error) {
	if err := validatePaging(page, pageSize); err != nil {
		return nil, err
	}

	total, err := u.repo.Count(ctx)
	if err != nil {
		return nil, domain.Classify(err)
	}
	if total == 0 {
		return &entity.RankedPage{
			Records:     []entity.Character{},
			CurrentPage: page,
		}, nil
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if page > totalPages {
		return nil, domain.NotFound("page %d does not exist (total pages: %d)", page, totalPages)
	}

	offset := (page - 1) * pageSize
	records, err := u.repo.FindPage(ctx, offset, pageSize)
	if err != nil {
		return nil, domain.Classify(err)
	}
	if records == nil {
		records = []entity.Character{}
	}

	return &entity.RankedPage{
		Records:     records,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
		HasMore:     int64(offset+pageSize) < total,
	}, nil
}

// Search はキーワードでキャラクターを検索します。
// 結果は SearchLimit 件で打ち切られ、ReturnedCount は打ち切り後の件数です。
func (u *RankingUsecase) Search(ctx context.Context, keyword string) (*entity.SearchResult, error) {
	kw, err := normalizeKeyword(keyword)
	if err != nil {
		return nil, err
	}

	matches, err := u.repo.SearchByKeyword(ctx, kw, SearchLimit)
	if err != nil {
		return nil, domain.Classify(err)
	}
	if len(matches) > SearchLimit {
		matches = matches[:SearchLimit]
	}
	if matches == nil {
		matches = []entity.Character{}
	}

	return &entity.SearchResult{
		Matches:           matches,
		ReturnedCount:     len(matches),
		NormalizedKeyword: kw,
	}, nil
}

// Delete はキャラクターを物理削除します。この操作は取り消せません。
func (u *RankingUsecase) Delete(ctx context.Context, characterID string) (*entity.DeleteResult, error) {
	if err := ValidateIdentifier(characterID); err != nil {
		return nil, err
	}

	if _, err := u.repo.FindByCharacterID(ctx, characterID); err != nil {
		if errors.Is(err, domain.ErrCharacterNotFound) {
			return nil, domain.NotFound("character %s not found", characterID)
		}
		return nil, domain.Classify(err)
	}

	// 検索と削除の間に別リクエストが削除した場合も NotFound として扱う
	if err := u.repo.DeleteByCharacterID(ctx, characterID); err != nil {
		if errors.Is(err, domain.ErrCharacterNotFound) {
			return nil, domain.NotFound("character %s not found", characterID)
		}
		return nil, domain.Classify(err)
	}

	return &entity.DeleteResult{
		Success: true,
		Message: fmt.Sprintf("character %s deleted", characterID),
	}, nil
}
