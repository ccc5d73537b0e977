package database

import (
	"fmt"
	"time"

	"terminal-terrace/course-platform/config"
	"terminal-terrace/course-platform/internal/model"
	"terminal-terrace/course-platform/packages/database"
	"terminal-terrace/course-platform/packages/logger"

	"gorm.io/gorm"
)

const serviceName = "course-platform"

var (
	PostgresDB *gorm.DB
	Redis      *database.RedisClient
)

// InitDatabase 初始化 PostgreSQL 与 Redis，并迁移数据表
func InitDatabase(log *logger.Logger) error {
	if err := initPostgres(log); err != nil {
		return err
	}
	return initRedis(log)
}

func initPostgres(log *logger.Logger) error {
	databaseConf := config.Conf.Database

	// 设置默认日志级别
	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "warn"
	}

	db, err := database.InitPostgres(
		&database.PostgresConfig{
			ServiceName:     serviceName,
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			LogLevel:        logLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
		log,
	)
	if err != nil {
		return err
	}

	// 初始化数据库表
	if err := model.InitTable(db); err != nil {
		return fmt.Errorf("初始化数据表失败: %w", err)
	}

	PostgresDB = db
	return nil
}

func initRedis(log *logger.Logger) error {
	redisConf := config.Conf.Redis

	client, err := database.InitRedis(&database.RedisConfig{
		ServiceName: serviceName,
		Host:        redisConf.Host,
		Port:        redisConf.Port,
		Password:    redisConf.Password,
		DB:          redisConf.DB,
		PoolSize:    redisConf.PoolSize,
	}, log)
	if err != nil {
		return err
	}

	Redis = client
	return nil
}

// Close 关闭所有连接
func Close() {
	if Redis != nil {
		_ = Redis.Close()
	}
	if PostgresDB != nil {
		if sqlDB, err := PostgresDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
