// Package config はサーバーとインポートツールの設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ranking_backend/internal/platform/db"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config はプロセス全体の設定です。キーはフラットで、環境変数 RANKING_<KEY> に対応します。
type Config struct {
	// HTTP
	Addr            string        `koanf:"http_addr"`
	CORSOrigins     string        `koanf:"cors_origins"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// ログ
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// DB
	DBDriver         string        `koanf:"db_driver"`
	DBHost           string        `koanf:"db_host"`
	DBPort           string        `koanf:"db_port"`
	DBUser           string        `koanf:"db_user"`
	DBPassword       string        `koanf:"db_password"`
	DBName           string        `koanf:"db_name"`
	DBSSLMode        string        `koanf:"db_sslmode"`
	DBPath           string        `koanf:"db_path"`
	DBConnectTimeout time.Duration `koanf:"db_connect_timeout"`
	RunMigrations    bool          `koanf:"run_migrations"`

	// Redis。空の場合はプロセス内のレートリミッタを使う
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`

	// 削除APIのレート制限（クライアントIPごと）
	DeleteRateLimit  int           `koanf:"delete_rate_limit"`
	DeleteRateWindow time.Duration `koanf:"delete_rate_window"`
}

// New はデフォルト値で埋めたConfigを返します。
func New() *Config {
	return &Config{
		Addr:             ":8080",
		CORSOrigins:      "http://localhost:3000",
		ShutdownTimeout:  10 * time.Second,
		LogLevel:         "info",
		LogFormat:        "json",
		DBDriver:         db.DriverPostgres,
		DBHost:           "localhost",
		DBPort:           "5432",
		DBUser:           "postgres",
		DBName:           "ranking",
		DBSSLMode:        "disable",
		DBPath:           "ranking.db",
		DBConnectTimeout: 60 * time.Second,
		DeleteRateLimit:  30,
		DeleteRateWindow: time.Minute,
	}
}

// AllowedOrigins はカンマ区切りの cors_origins を分割して返します。
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Database はplatform/db向けの接続設定を返します。
func (c *Config) Database() db.Config {
	return db.Config{
		Driver:        c.DBDriver,
		Host:          c.DBHost,
		Port:          c.DBPort,
		User:          c.DBUser,
		Password:      c.DBPassword,
		Name:          c.DBName,
		SSLMode:       c.DBSSLMode,
		Path:          c.DBPath,
		Timeout:       c.DBConnectTimeout,
		RunMigrations: c.RunMigrations,
	}
}

// Validate は読み込み後の設定値を検証します。
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: http_addr must not be empty", ErrInvalidConfig)
	}
	switch c.DBDriver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported db_driver %q", ErrInvalidConfig, c.DBDriver)
	}
	if c.DeleteRateLimit <= 0 {
		return fmt.Errorf("%w: delete_rate_limit must be positive", ErrInvalidConfig)
	}
	if c.DeleteRateWindow <= 0 {
		return fmt.Errorf("%w: delete_rate_window must be positive", ErrInvalidConfig)
	}
	return nil
}
