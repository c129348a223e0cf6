// Package entity はrankingフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Character はゲームキャラクター1件のレコードです。
// CharacterID は外部IDで、一意かつインポート後は変更されません。
type Character struct {
	// ID は内部で採番する主キーです。HTTPには公開しません。
	ID uint `gorm:"primaryKey"`

	// CharacterID は外部ID（最大30文字）
	CharacterID string `gorm:"column:character_id;size:30;not null;uniqueIndex"`

	Name  string `gorm:"size:255;not null"`
	Level int    `gorm:"not null;default:1;index:idx_characters_rank,priority:1"`

	JobName  *string `gorm:"size:100"`
	JobCode  *int
	Money    *int64
	PlayTime *int64
	Exp      *int64 `gorm:"index:idx_characters_rank,priority:2"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName はGORM用のテーブル名を返します。
func (Character) TableName() string {
	return "characters"
}

// ExpOrZero は経験値を返します。未設定は0として扱い、ランキング順と揃えます。
func (c Character) ExpOrZero() int64 {
	if c.Exp == nil {
		return 0
	}
	return *c.Exp
}
