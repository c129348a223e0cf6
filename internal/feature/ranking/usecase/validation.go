package usecase

import (
	"strings"
	"unicode/utf8"

	"ranking_backend/internal/feature/ranking/domain"
)

const (
	// MaxPageSize はページサイズの上限です。超過した値は丸めずに拒否します。
	MaxPageSize = 1000
	// MinKeywordLength / MaxKeywordLength は検索キーワード（trim後）の文字数範囲です。
	MinKeywordLength = 2
	MaxKeywordLength = 30
	// MaxIdentifierLength はキャラクターIDの最大文字数です。
	MaxIdentifierLength = 30
	// SearchLimit は検索結果の最大件数です。ページングではなく単純な打ち切りです。
	SearchLimit = 50
)

// forbiddenChars は検索キーワードとIDに含めてはいけない文字です。
const forbiddenChars = `<>{}[]\`

func validatePaging(page, pageSize int) error {
	if page < 1 {
		return domain.InvalidArgument("page must be a positive integer")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return domain.InvalidArgument("pageSize must be between 1 and %d", MaxPageSize)
	}
	return nil
}

// normalizeKeyword はキーワードをtrimし、検索ルールに照らして検証します。
func normalizeKeyword(keyword string) (string, error) {
	kw := strings.TrimSpace(keyword)
	if kw == "" {
		return "", domain.InvalidArgument("keyword is required")
	}
	n := utf8.RuneCountInString(kw)
	if n < MinKeywordLength {
		return "", domain.InvalidArgument("keyword must be at least %d characters", MinKeywordLength)
	}
	if n > MaxKeywordLength {
		return "", domain.InvalidArgument("keyword must be at most %d characters", MaxKeywordLength)
	}
	if strings.ContainsAny(kw, forbiddenChars) {
		return "", domain.InvalidArgument("keyword contains disallowed characters")
	}
	return kw, nil
}

// ValidateIdentifier はキャラクターIDを検証します。
// インポートでも書き込み前に同じルールを適用します。
func ValidateIdentifier(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.InvalidArgument("character id is required")
	}
	if utf8.RuneCountInString(id) > MaxIdentifierLength {
		return domain.InvalidArgument("character id must be at most %d characters", MaxIdentifierLength)
	}
	if strings.ContainsAny(id, forbiddenChars) {
		return domain.InvalidArgument("character id contains disallowed characters")
	}
	return nil
}
