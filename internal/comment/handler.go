package comment

import (
	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-gonic/gin"
)

// CommentHandler 评论处理器
type CommentHandler struct {
	service *CommentService
	log     *logger.Logger
}

func NewCommentHandler(service *CommentService, log *logger.Logger) *CommentHandler {
	return &CommentHandler{service: service, log: log}
}

// GetStepComments 步骤评论树
// @Summary 获取步骤的评论树
// @Tags 评论
// @Security BearerAuth
// @Param step_id path int true "步骤ID"
// @Success 200 {object} response.Response{data=[]CommentFullResponse}
// @Router /steps/{step_id}/comments [get]
func (h *CommentHandler) GetStepComments(c *gin.Context) {
	stepID, ok := dto.ParseIDParam(c, "step_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.GetTreeOfComments(c.Request.Context(), stepID, actor)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// CreateComment 发表顶级评论
// @Summary 发表评论
// @Tags 评论
// @Security BearerAuth
// @Param step_id path int true "步骤ID"
// @Param request body CreateCommentRequest true "评论内容"
// @Success 201 {object} response.Response{data=CommentFullResponse}
// @Router /steps/{step_id}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	stepID, ok := dto.ParseIDParam(c, "step_id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.LeaveComment(c.Request.Context(), stepID, actor, req.Content)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.CreatedResponse(c, result)
}

// ReplyComment 回复评论
// @Summary 回复评论
// @Tags 评论
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Param request body CreateCommentRequest true "回复内容"
// @Success 201 {object} response.Response{data=CommentFullResponse}
// @Router /comments/{comment_id}/replies [post]
func (h *CommentHandler) ReplyComment(c *gin.Context) {
	commentID, ok := dto.ParseIDParam(c, "comment_id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.ReplyToComment(c.Request.Context(), commentID, actor, req.Content)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.CreatedResponse(c, result)
}

// UpdateComment 编辑评论
// @Summary 编辑评论
// @Tags 评论
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Param request body UpdateCommentRequest true "新内容"
// @Success 200 {object} response.Response{data=CommentFullResponse}
// @Router /comments/{comment_id} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := dto.ParseIDParam(c, "comment_id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.UpdateComment(c.Request.Context(), commentID, actor, req)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// DeleteComment 删除评论
// @Summary 删除评论（软删除）
// @Tags 评论
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Router /comments/{comment_id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := dto.ParseIDParam(c, "comment_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	if err := h.service.SoftDeleteComment(c.Request.Context(), commentID, actor); err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "评论已删除"})
}

// GetCourseComments 课程下全部评论
// @Summary 获取课程的全部评论（按时间倒序）
// @Tags 评论
// @Security BearerAuth
// @Param course_id path int true "课程ID"
// @Success 200 {object} response.Response{data=[]CommentFullResponse}
// @Router /courses/{course_id}/comments [get]
func (h *CommentHandler) GetCourseComments(c *gin.Context) {
	courseID, ok := dto.ParseIDParam(c, "course_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.GetAllCourseComments(c.Request.Context(), courseID, actor)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}
