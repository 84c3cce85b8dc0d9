// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
type Config struct {
	URL      string // REDIS_URL (e.g., "redis://:pass@localhost:6379/0"); takes precedence
	Host     string
	Port     string
	Password string
}

// LoadConfig loads Redis settings from environment variables.
func LoadConfig() Config {
	return Config{
		URL:      os.Getenv("REDIS_URL"),
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

// Enabled reports whether any connection target is configured.
func (c Config) Enabled() bool {
	return c.URL != "" || c.Host != ""
}

// Options converts the configuration into go-redis options.
func (c Config) Options() (*redis.Options, error) {
	if c.URL != "" {
		opt, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return opt, nil
	}
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     c.Host + ":" + port,
		Password: c.Password,
		DB:       0,
	}, nil
}

// NewRedisClient はRedisに接続し、Pingで疎通を確認したクライアントを返します。
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	opt, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", opt.Addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", opt.Addr)
	return rdb, nil
}
