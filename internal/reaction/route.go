package reaction

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *ReactionHandler, auth gin.HandlerFunc) {
	reactions := router.Group("/reactions/comments", auth)
	{
		reactions.POST("/:comment_id/like", handler.Like)
		reactions.POST("/:comment_id/dislike", handler.Dislike)
	}
}
