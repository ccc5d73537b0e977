package testutils

import (
	"context"
	"os"
	"testing"

	"terminal-terrace/course-platform/internal/model"
	dbPkg "terminal-terrace/course-platform/packages/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates a test database connection.
// If TEST_DATABASE_DSN is set, PostgreSQL is used and every test runs inside a
// transaction that is rolled back on cleanup. Otherwise an in-memory SQLite
// database with foreign keys enabled is created per test.
// All tables are migrated before returning.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if dsn := os.Getenv("TEST_DATABASE_DSN"); dsn != "" {
		return setupPostgres(t, dsn)
	}
	return setupSQLite(t)
}

func setupPostgres(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	tx := db.Begin()
	t.Cleanup(func() {
		tx.Rollback()
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return tx
}

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}

	// 内存库只存在于单个连接上
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sqlite connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// SetupTestRedis starts an in-process Redis server and returns a client for it.
func SetupTestRedis(t *testing.T) (*dbPkg.RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return dbPkg.NewRedisClient(client), mr
}
