// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultSecretKey は SECRET_KEY 未設定時に使われる署名鍵です。
const DefaultSecretKey = "default_secret"

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// トークン設定
	SecretKey string `env:"SECRET_KEY" envDefault:"default_secret"` // トークン署名用の秘密鍵

	// サーバー設定
	Port    string `env:"PORT" envDefault:"3000"`      // APIサーバーのポート番号
	GinMode string `env:"GIN_MODE" envDefault:"debug"` // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173"` // CORS許可オリジン（カンマ区切り）
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// 空文字で上書きされた場合もデフォルトに戻す
	if config.SecretKey == "" {
		config.SecretKey = DefaultSecretKey
	}
	if config.Port == "" {
		config.Port = "3000"
	}
	if config.GinMode == "" {
		config.GinMode = "debug"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
func (c *Config) Validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be one of debug, release, test: %q", c.GinMode)
	}

	// 本番環境ではデフォルトの署名鍵を許可しない
	if c.GinMode == "release" && c.SecretKey == DefaultSecretKey {
		return fmt.Errorf("SECRET_KEY must be set in release mode")
	}

	return nil
}
