package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ranking_backend/internal/feature/ranking/domain/entity"
)

const (
	// importBatchSize は1回のUPSERTで書き込む行数です。
	importBatchSize = 500
)

// CharacterWriter はインポート時のキャラクター書き込みを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CharacterWriter interface {
	// UpsertBatch は character_id をキーにレコードを挿入または更新します。
	UpsertBatch(ctx context.Context, characters []entity.Character) error
}

// ImportUsecase はスプレッドシートから読み込んだ行をデータベースへ取り込みます。
// 不正な行はスキップしてログに出力し、残りの行の取り込みを続けます。
type ImportUsecase struct {
	writer    CharacterWriter
	batchSize int
}

// NewImportUsecase は新しい ImportUsecase を作成します。
func NewImportUsecase(writer CharacterWriter) *ImportUsecase {
	return &ImportUsecase{writer: writer, batchSize: importBatchSize}
}

// Import は rows を検証し、有効な行をバッチ単位で書き込みます。
// 書き込みに失敗した場合はその時点で中断し、それまでの件数とエラーを返します。
func (iu *ImportUsecase) Import(ctx context.Context, rows []entity.Character) (entity.ImportReport, error) {
	report := entity.ImportReport{Read: len(rows)}

	valid := make([]entity.Character, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		row.CharacterID = strings.TrimSpace(row.CharacterID)
		row.Name = strings.TrimSpace(row.Name)

		if err := ValidateIdentifier(row.CharacterID); err != nil {
			slog.Warn("skipping row", "row", i+1, "character_id", row.CharacterID, "reason", err.Error())
			report.Skipped++
			continue
		}
		if row.Name == "" {
			slog.Warn("skipping row", "row", i+1, "character_id", row.CharacterID, "reason", "name is required")
			report.Skipped++
			continue
		}
		if row.Level < 1 {
			row.Level = 1
		}
		// タイムスタンプはサーバー側で付与する
		row.ID = 0
		row.CreatedAt = time.Time{}
		row.UpdatedAt = time.Time{}

		// 同じIDが複数行にある場合は後勝ち
		if idx, ok := seen[row.CharacterID]; ok {
			valid[idx] = row
			report.Skipped++
			continue
		}
		seen[row.CharacterID] = len(valid)
		valid = append(valid, row)
	}

	for start := 0; start < len(valid); start += iu.batchSize {
		end := min(start+iu.batchSize, len(valid))
		if err := iu.writer.UpsertBatch(ctx, valid[start:end]); err != nil {
			return report, err
		}
		report.Imported += end - start
		slog.Info("imported batch", "from", start+1, "to", end)
	}

	return report, nil
}
