package comment

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册评论相关路由，全部需要登录
func RegisterRoutes(router *gin.RouterGroup, handler *CommentHandler, auth gin.HandlerFunc) {
	// ========== 步骤评论路由 ==========
	steps := router.Group("/steps", auth)
	{
		steps.GET("/:step_id/comments", handler.GetStepComments)
		steps.POST("/:step_id/comments", handler.CreateComment)
	}

	// ========== 评论操作路由 ==========
	comments := router.Group("/comments", auth)
	{
		comments.POST("/:comment_id/replies", handler.ReplyComment)
		comments.PATCH("/:comment_id", handler.UpdateComment)
		comments.DELETE("/:comment_id", handler.DeleteComment)
	}

	router.GET("/courses/:course_id/comments", auth, handler.GetCourseComments)
}
