package user

import (
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/internal/model/user"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册用户相关路由
func RegisterRoutes(router *gin.RouterGroup, handler *UserHandler, auth gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.POST("/register", handler.Register)
		users.POST("/login", handler.Login)
		users.POST("/logout", handler.Logout)
		users.GET("/me", auth, handler.Me)
		users.PATCH("/:user_id/role", auth, middleware.RequireRole(user.RoleAdmin), handler.UpdateRole)
	}
}
