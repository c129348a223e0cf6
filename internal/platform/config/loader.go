package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "RANKING_"
	envConfig  = "RANKING_CONFIG"
	dotEnvFile = ".env"
)

// Load はデフォルト値、YAMLファイル、環境変数の順に重ねて設定を構築します。
// 後に読み込んだものが優先されます。
//  1. New() のデフォルト値
//  2. RANKING_CONFIG が指すYAMLファイル（任意）
//  3. RANKING_ で始まる環境変数（.env があれば先に読み込む）
func Load() (*Config, error) {
	// .env は任意。既に設定済みの環境変数は上書きしない
	_ = godotenv.Load(dotEnvFile)

	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// RANKING_DB_HOST -> db_host
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
