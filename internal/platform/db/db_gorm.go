// Package db はGORMによるデータベース接続を提供します。
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sethvargo/go-retry"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	projectadapters "foresight_backend/internal/feature/project/adapters"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// 接続リトライの間隔
	retryInterval = 3 * time.Second
)

// Config はデータベース接続設定です。
type Config struct {
	Driver       string // "postgres"（既定）または "sqlite"
	URL          string // DATABASE_URL。設定されている場合は他の項目より優先
	User         string
	Password     string
	Name         string // sqliteの場合はファイルパス
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQLのインスタンス接続名
	Migrate      bool   // RUN_MIGRATIONS=true
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:       os.Getenv("DB_DRIVER"),
		URL:          os.Getenv("DATABASE_URL"),
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		SSLMode:      os.Getenv("DB_SSLMODE"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		Migrate:      os.Getenv("RUN_MIGRATIONS") == "true",
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverPostgres
	}
	return cfg
}

// BuildDSN は設定から接続文字列を組み立てます。
// Cloud SQLのインスタンス名がある場合はUnixソケット経由の接続になります。
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		if cfg.Name == "" {
			return "foresight.db"
		}
		return cfg.Name
	}
	if cfg.URL != "" {
		return cfg.URL
	}

	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name, sslmode)
	}
	port := cfg.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, port, sslmode)
}

// Opener はDSNからDB接続を開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor はドライバに対応するOpenerを返します。
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ConnectWithRetry はtimeoutに達するまで一定間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	return connectWithRetry(dsn, timeout, retryInterval, opener)
}

func connectWithRetry(dsn string, timeout, interval time.Duration, opener Opener) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		db      *gorm.DB
		lastErr error
	)
	err := retry.Do(ctx, retry.NewConstant(interval), func(ctx context.Context) error {
		conn, err := opener(dsn)
		if err != nil {
			lastErr = err
			slog.Warn("DB connect failed, retrying...", "error", err)
			return retry.RetryableError(err)
		}
		db = conn
		return nil
	})
	if err != nil {
		if lastErr != nil && errors.Is(err, context.DeadlineExceeded) {
			err = lastErr
		}
		return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
	}
	return db, nil
}

// Migrate はprojectフィーチャーのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&projectadapters.ProjectModel{},
		&projectadapters.ProjectResponseModel{},
		&projectadapters.ProfileModel{},
	)
}

// OpenDB は設定に従って接続し、必要であればマイグレーションを実行します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, opener)
	if err != nil {
		return nil, err
	}

	if cfg.Migrate || cfg.Driver == DriverSQLite {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
