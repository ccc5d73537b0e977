package reaction

import (
	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-gonic/gin"
)

// ReactionHandler 点赞/点踩处理器
type ReactionHandler struct {
	service *ReactionService
	log     *logger.Logger
}

func NewReactionHandler(service *ReactionService, log *logger.Logger) *ReactionHandler {
	return &ReactionHandler{service: service, log: log}
}

// Like 点赞评论
// @Summary 点赞评论（再次调用取消点赞）
// @Tags 评论
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Success 200 {object} response.Response{data=ToggleResponse}
// @Router /reactions/comments/{comment_id}/like [post]
func (h *ReactionHandler) Like(c *gin.Context) {
	h.toggle(c, true)
}

// Dislike 点踩评论
// @Summary 点踩评论（再次调用取消点踩）
// @Tags 评论
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Success 200 {object} response.Response{data=ToggleResponse}
// @Router /reactions/comments/{comment_id}/dislike [post]
func (h *ReactionHandler) Dislike(c *gin.Context) {
	h.toggle(c, false)
}

func (h *ReactionHandler) toggle(c *gin.Context, isLike bool) {
	commentID, ok := dto.ParseIDParam(c, "comment_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.ToggleReaction(c.Request.Context(), commentID, actor, isLike)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}
