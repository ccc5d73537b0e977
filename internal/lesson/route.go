package lesson

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册课时路由，全部需要登录
func RegisterRoutes(router *gin.RouterGroup, handler *LessonHandler, auth gin.HandlerFunc) {
	courses := router.Group("/courses", auth)
	{
		courses.GET("/:course_id/lessons", handler.ListLessons)
		courses.POST("/:course_id/lessons", handler.CreateLesson)
	}

	lessons := router.Group("/lessons", auth)
	{
		lessons.GET("/:lesson_id", handler.GetLesson)
		lessons.PATCH("/:lesson_id", handler.UpdateLesson)
		lessons.DELETE("/:lesson_id", handler.DeleteLesson)
	}
}
