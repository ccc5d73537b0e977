package progress

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *ProgressHandler, auth gin.HandlerFunc) {
	courses := router.Group("/courses", auth)
	{
		courses.POST("/:course_id/lessons/:lesson_id/complete", handler.CompleteLesson)
		courses.DELETE("/:course_id/lessons/:lesson_id/complete", handler.UncompleteLesson)
		courses.GET("/:course_id/progress", handler.GetCourseProgress)
	}

	router.GET("/progress/my", auth, handler.GetMyProgress)
}
