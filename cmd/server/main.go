package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"terminal-terrace/course-platform/config"
	"terminal-terrace/course-platform/internal/database"
	"terminal-terrace/course-platform/internal/notification"
	"terminal-terrace/course-platform/internal/realtime"
	"terminal-terrace/course-platform/internal/route"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title Course Platform API
// @version 1.0
// @description 课程、购买、评论与学习进度接口
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	config.MustLoad("config.yaml")
	conf := config.Conf

	appLog, err := logger.New(conf.Server.Mode, conf.Log.Level)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer appLog.Sync()

	if conf.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if conf.Swagger.Generate {
		if err := config.GenerateSwaggerDocs(context.Background()); err != nil {
			appLog.Warn("生成接口文档失败", "error", err)
		}
	}

	// 2. 初始化数据库
	if err := database.InitDatabase(appLog); err != nil {
		appLog.Fatal("初始化数据库失败", "error", err)
	}
	defer database.Close()

	// 3. 实时推送：多实例部署时经 Redis 频道转发
	registry := realtime.NewRegistry(appLog)
	var sender notification.Sender = registry
	var relay *realtime.Relay
	if conf.Notification.Relay {
		relay = realtime.NewRelay(database.Redis, conf.Notification.RelayChannel, registry, appLog)
		sender = relay
	}

	// 4. 设置路由
	r := route.SetupRouter(route.Dependencies{
		DB:       database.PostgresDB,
		Redis:    database.Redis,
		Registry: registry,
		Sender:   sender,
		Log:      appLog,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port),
		Handler:      r,
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	// 5. 启动服务，收到信号后优雅退出
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLog.Info("服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if relay != nil {
		g.Go(func() error {
			return relay.Run(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		appLog.Info("正在关闭服务")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		registry.CloseAll()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLog.Error("服务异常退出", "error", err)
	}
}
