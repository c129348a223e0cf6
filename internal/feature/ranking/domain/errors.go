// Package domain はrankingフィーチャーのドメインエラーを定義します。
package domain

import (
	"errors"
	"fmt"
)

// Kind は失敗の種別です。transport層はこれをステータスコードに変換します。
type Kind int

const (
	// KindInternal は他に分類されない失敗
	KindInternal Kind = iota
	// KindInvalidArgument は不正・範囲外の入力
	KindInvalidArgument
	// KindNotFound はページまたはレコードが存在しない
	KindNotFound
	// KindStorageUnavailable は永続化層の失敗。詳細は呼び出し元に返さない
	KindStorageUnavailable
)

// String はログとメトリクスのラベルに使う名前を返します。
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindStorageUnavailable:
		return "storage_unavailable"
	default:
		return "internal"
	}
}

// 詳細を隠す失敗に返す汎用メッセージ
const (
	msgStorageUnavailable = "storage is temporarily unavailable"
	msgInternal           = "internal error"
)

var (
	// ErrCharacterNotFound はIDに一致するレコードが無い場合にストアが返します。
	ErrCharacterNotFound = errors.New("character not found")
)

// Error は分類済みの失敗です。Message はそのまま呼び出し元に返せます。
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap はログ出力用に元のエラーを返します。
func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidArgument は KindInvalidArgument のエラーを生成します。
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFound は KindNotFound のエラーを生成します。
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// StoreError はストア由来のエラーを示します。
// ストアのアダプターは永続化エラーをすべてこれで包みます。
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Classify はエラーを分類します。
// 分類済みのエラーはそのまま返し、StoreError は StorageUnavailable、それ以外は Internal にします。
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	var se *StoreError
	if errors.As(err, &se) {
		return &Error{Kind: KindStorageUnavailable, Message: msgStorageUnavailable, Err: err}
	}
	return &Error{Kind: KindInternal, Message: msgInternal, Err: err}
}

// KindOf は err の種別を返します。未分類なら KindInternal です。
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
