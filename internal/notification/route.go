package notification

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册通知路由
// ws 为 WebSocket 入口，自行完成认证（浏览器无法设置 header，支持 ?token=）
func RegisterRoutes(router *gin.RouterGroup, handler *NotificationHandler, auth gin.HandlerFunc, ws gin.HandlerFunc) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("/ws", ws)
		notifications.GET("", auth, handler.GetNotifications)
		notifications.DELETE("", auth, handler.ClearNotifications)
		notifications.PATCH("/:id/read", auth, handler.MarkAsRead)
	}
}
