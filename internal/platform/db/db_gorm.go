// Package db はGORMによるデータベース接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ranking_backend/internal/feature/ranking/domain/entity"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	retryInterval = 3 * time.Second
)

// Config はデータベース接続設定です。
type Config struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path はSQLiteのファイルパスです。Driver が sqlite の場合のみ使用します。
	Path string

	Timeout       time.Duration
	RunMigrations bool
}

// Opener はDSNからDB接続を開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN は設定からDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		return cfg.Path
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
}

// NewOpener はドライバー名に対応するOpenerを返します。
func NewOpener(driver string) (Opener, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gcfg)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// ConnectWithRetry は timeout を過ぎるまで retryInterval ごとに接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open は接続を確立し、RunMigrations が有効ならスキーマを作成します。
func Open(cfg Config) (*gorm.DB, error) {
	opener, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.Timeout, opener)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	slog.Info("DB connection established", "driver", cfg.Driver)
	return db, nil
}

// Migrate はcharactersテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Character{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Close は基盤となる *sql.DB を閉じます。
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
