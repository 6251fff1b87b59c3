// Package config は環境変数からアプリケーション設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL       string        `envconfig:"DATABASE_URL"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`

	// Server
	ServerPort      string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// CORS
	CORSAllowedOrigin string `envconfig:"CORS_ALLOWED_ORIGIN" default:"http://localhost:3000"`

	// Rate Limit（1分あたりのリクエスト数）
	RateLimitGeneral int `envconfig:"RATE_LIMIT_GENERAL" default:"120"`
	RateLimitWrite   int `envconfig:"RATE_LIMIT_WRITE" default:"60"`

	// Users
	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`

	// Events（AMQPURLが空の場合は発行しない）
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"pos.events"`

	// Logging
	LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`
}

// Load は環境変数からConfigを読み込む。
// envFilesが指定された場合はそれらを、未指定の場合はカレントディレクトリの.envを先に読み込む。
// 既に設定されている環境変数は.envの値で上書きしない。
// 必須環境変数が未設定、または値が不正な場合はエラーを返す。
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables are not set: %v", missing)
	}

	if c.RateLimitGeneral <= 0 {
		return fmt.Errorf("RATE_LIMIT_GENERAL must be positive: %d", c.RateLimitGeneral)
	}
	if c.RateLimitWrite <= 0 {
		return fmt.Errorf("RATE_LIMIT_WRITE must be positive: %d", c.RateLimitWrite)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d: %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 {
		return fmt.Errorf("DB connection pool sizes must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive: %s", c.ShutdownTimeout)
	}
	return nil
}
