package db

import (
	"bytes"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"messagely/internal/config"
)

// TestBuildDSN_Postgres はPostgreSQL接続用のDSN文字列が正しく生成されることを検証します。
func TestBuildDSN_Postgres(t *testing.T) {
	t.Parallel()

	cfg := config.DB{
		Driver:   "postgres",
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5432",
		SSLMode:  "disable",
	}

	dsn := BuildDSN(cfg)

	expected := "host=localhost user=testuser password=testpass dbname=testdb port=5432 sslmode=disable TimeZone=UTC"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

// TestBuildDSN_SQLite はSQLiteの場合にファイルパスがそのままDSNになることを検証します。
func TestBuildDSN_SQLite(t *testing.T) {
	t.Parallel()

	cfg := config.DB{Driver: "sqlite", SQLitePath: "./messagely.db", Host: "ignored"}

	if dsn := BuildDSN(cfg); dsn != "./messagely.db" {
		t.Errorf("expected DSN %q, got %q", "./messagely.db", dsn)
	}
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	opener := func(dsn string) (*gorm.DB, error) {
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// Not parallel because this test takes time due to retry sleeps

	mockDB := &gorm.DB{}
	attemptCount := 0

	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		if attemptCount < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	// Use a timeout that allows for 2 retries (retry interval is 3 seconds)
	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
	if attemptCount != 3 {
		t.Errorf("expected 3 attempts, got %d", attemptCount)
	}
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return nil, errors.New("connection refused")
	}

	// Very short timeout - should fail quickly
	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	if err == nil {
		t.Fatal("expected error after timeout, got nil")
	}
	if attemptCount == 0 {
		t.Error("expected at least one connection attempt")
	}
}

// TestOpen_SQLiteMigrates はSQLiteで接続しマイグレーションが適用されることを検証します。
func TestOpen_SQLiteMigrates(t *testing.T) {
	t.Parallel()

	db, err := Open(config.DB{
		Driver:         "sqlite",
		SQLitePath:     "file::memory:?cache=shared",
		RunMigrations:  true,
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err)

	for _, table := range []string{"users", "messages", "revoked_tokens"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s should exist", table)
	}
}

// TestNewGormLogger はレコード未検出を記録せず、クエリエラーは記録することを検証します。
func TestNewGormLogger(t *testing.T) {
	t.Parallel()

	type widgetRow struct {
		ID   uint
		Name string
	}

	var buf bytes.Buffer
	db, err := OpenerFor("sqlite")(":memory:")
	require.NoError(t, err)
	db.Logger = NewGormLogger(log.New(&buf, "", 0))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&widgetRow{}))

	var row widgetRow
	err = db.First(&row, 42).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NotContains(t, buf.String(), "record not found")

	err = db.Table("missing_table").Find(&[]widgetRow{}).Error
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "missing_table")
}
