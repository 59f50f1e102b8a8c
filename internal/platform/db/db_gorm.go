// Package db opens the GORM connection and applies the schema.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"messagely/internal/config"
	authentity "messagely/internal/feature/auth/domain/entity"
	messageadapters "messagely/internal/feature/messages/adapters"
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// slowQueryThreshold を超えたクエリは警告として記録されます。
const slowQueryThreshold = 200 * time.Millisecond

// NewGormLogger は GORM のログを w に出力するロガーを返します。
// レコード未検出は呼び出し側で扱うため記録しません。
func NewGormLogger(w gormlogger.Writer) gormlogger.Interface {
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Opener は DSN から gorm.DB を開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN は設定からドライバーごとの DSN 文字列を組み立てます。
func BuildDSN(cfg config.DB) string {
	if cfg.Driver == "sqlite" {
		return cfg.SQLitePath
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
}

// OpenerFor はドライバー名に対応する Opener を返します。
// TranslateError を有効にし、一意制約違反を gorm.ErrDuplicatedKey に変換させます。
func OpenerFor(driver string) Opener {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn)),
	}
	switch driver {
	case "sqlite":
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }
	default:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }
	}
}

// ConnectWithRetry は timeout に達するまで接続を繰り返し試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects with retry and migrates the schema when cfg.RunMigrations is set.
func Open(cfg config.DB) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, OpenerFor(cfg.Driver))
	if err != nil {
		return nil, err
	}
	slog.Info("database connected", "driver", cfg.Driver)

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates the users, messages and revoked_tokens tables.
func Migrate(db *gorm.DB) error {
	// マイグレーション（User, Message, RevokedToken）
	if err := db.AutoMigrate(
		&authentity.User{},
		&messageadapters.MessageModel{},
		&authentity.RevokedToken{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
