package route

import (
	"context"
	"net/http"
	"time"

	"terminal-terrace/course-platform/config"
	"terminal-terrace/course-platform/internal/comment"
	"terminal-terrace/course-platform/internal/course"
	"terminal-terrace/course-platform/internal/lesson"
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/internal/notification"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/internal/progress"
	"terminal-terrace/course-platform/internal/purchase"
	"terminal-terrace/course-platform/internal/reaction"
	"terminal-terrace/course-platform/internal/realtime"
	"terminal-terrace/course-platform/internal/step"
	"terminal-terrace/course-platform/internal/user"
	"terminal-terrace/course-platform/packages/database"
	"terminal-terrace/course-platform/packages/email"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Dependencies 路由所需的外部资源
type Dependencies struct {
	DB       *gorm.DB
	Redis    *database.RedisClient
	Registry *realtime.Registry  // 本实例的 WebSocket 连接
	Sender   notification.Sender // 实时推送通道，单实例时即 Registry
	Log      *logger.Logger
}

func initRoute(r *gin.Engine, deps Dependencies) {
	conf := config.Conf
	secret := conf.JWT.Secret
	auth := middleware.JWTAuth(secret)
	optionalAuth := middleware.OptionalJWTAuth(secret)

	// 初始化公共依赖
	perm := permission.NewPermissionService(deps.DB)
	courseRepo := course.NewCourseRepository(deps.DB)

	mailClient := email.NewClient(&conf.Email)
	var welcomeMailer user.WelcomeMailer
	var receiptMailer purchase.ReceiptMailer
	if mailClient.Enabled() {
		welcomeMailer = mailClient
		receiptMailer = mailClient
	}

	// 通知
	store := notification.NewStore(deps.Redis, notification.StoreConfig{
		KeyPrefix: conf.Notification.KeyPrefix,
		MaxItems:  conf.Notification.MaxItems,
		TTL:       time.Duration(conf.Notification.TTLHours) * time.Hour,
	}, deps.Log)
	notificationService := notification.NewNotificationService(store, deps.Sender, deps.Log)
	wsHandler := realtime.NewHandler(deps.Registry, secret, conf.CORS.Origins, deps.Log)

	// 初始化 service
	userService := user.NewUserService(
		user.NewUserRepository(deps.DB),
		user.TokenConfig{Secret: secret, TTL: conf.TokenTTL()},
		welcomeMailer,
		deps.Log,
	)
	courseService := course.NewCourseService(courseRepo, perm, deps.Log)
	lessonService := lesson.NewLessonService(lesson.NewLessonRepository(deps.DB), perm)
	stepService := step.NewStepService(step.NewStepRepository(deps.DB), perm)
	commentService := comment.NewCommentService(comment.NewCommentRepository(deps.DB), perm, deps.Log)
	reactionService := reaction.NewReactionService(
		reaction.NewReactionRepository(deps.DB), commentService, notificationService, deps.Log)
	purchaseService := purchase.NewPurchaseService(
		purchase.NewPurchaseRepository(deps.DB),
		courseRepo,
		purchase.NewGatewayClient(purchase.GatewayConfig{
			BaseURL:   conf.Payment.BaseURL,
			ShopID:    conf.Payment.ShopID,
			SecretKey: conf.Payment.SecretKey,
			Timeout:   conf.Payment.Timeout,
		}),
		notificationService,
		receiptMailer,
		purchase.Config{ReturnURL: conf.Payment.ReturnURL, Currency: conf.Payment.Currency},
		deps.Log,
	)
	progressService := progress.NewProgressService(progress.NewProgressRepository(deps.DB), perm)

	r.GET("/health", healthCheck(deps))

	// Swagger 文档路由，文档由 swag init 生成
	if conf.Swagger.Enabled {
		r.StaticFile("/docs/swagger.json", conf.Swagger.DocPath)
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.json")))
	}

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		user.RegisterRoutes(apiV1, user.NewUserHandler(userService, deps.Log), auth)
		course.RegisterRoutes(apiV1, course.NewCourseHandler(courseService, deps.Log), auth, optionalAuth)
		lesson.RegisterRoutes(apiV1, lesson.NewLessonHandler(lessonService, deps.Log), auth)
		step.RegisterRoutes(apiV1, step.NewStepHandler(stepService, deps.Log), auth)
		comment.RegisterRoutes(apiV1, comment.NewCommentHandler(commentService, deps.Log), auth)
		reaction.RegisterRoutes(apiV1, reaction.NewReactionHandler(reactionService, deps.Log), auth)
		purchase.RegisterRoutes(apiV1, purchase.NewPurchaseHandler(purchaseService, deps.Log), auth)
		progress.RegisterRoutes(apiV1, progress.NewProgressHandler(progressService, deps.Log), auth)
		notification.RegisterRoutes(apiV1, notification.NewNotificationHandler(notificationService, deps.Log), auth, wsHandler.ServeWS)
	}
}

// healthCheck 数据库与 Redis 均可用时返回 200
func healthCheck(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "ok", "redis": "ok"}
		healthy := true
		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status["database"] = "unavailable"
			healthy = false
		}
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "unavailable"
			healthy = false
		}

		if !healthy {
			status["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["status"] = "ok"
		c.JSON(http.StatusOK, status)
	}
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Log))

	allowedOrigins := config.Conf.CORS.Origins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"} // 默认值
	}

	// 设置跨域请求，Cookie 登录需要允许携带凭证
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewIPRateLimiter(config.Conf.RateLimit.RequestsPerSecond, config.Conf.RateLimit.Burst)
	r.Use(limiter.Middleware())

	initRoute(r, deps)

	return r
}
