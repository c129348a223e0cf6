// Package logger はslogのデフォルトロガーを設定します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New はレベルとフォーマット（json / text）に応じたロガーを生成し、デフォルトに設定します。
func New(level, format string) *slog.Logger {
	l := NewWithWriter(os.Stdout, level, format)
	slog.SetDefault(l)
	return l
}

// NewWithWriter は出力先を指定してロガーを生成します。
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel は文字列をslog.Levelに変換します。未知の値はInfoとして扱います。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
