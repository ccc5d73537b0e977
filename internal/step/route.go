package step

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册步骤路由
// 评论相关的 /steps/:step_id/comments 由 comment 包注册
func RegisterRoutes(router *gin.RouterGroup, handler *StepHandler, auth gin.HandlerFunc) {
	lessons := router.Group("/lessons", auth)
	{
		lessons.GET("/:lesson_id/steps", handler.ListSteps)
		lessons.POST("/:lesson_id/steps", handler.CreateStep)
	}

	steps := router.Group("/steps", auth)
	{
		steps.GET("/:step_id", handler.GetStep)
		steps.PATCH("/:step_id", handler.UpdateStep)
		steps.DELETE("/:step_id", handler.DeleteStep)
	}
}
