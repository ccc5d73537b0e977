package lesson

import (
	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	service *LessonService
	log     *logger.Logger
}

func NewLessonHandler(service *LessonService, log *logger.Logger) *LessonHandler {
	return &LessonHandler{service: service, log: log}
}

// ListLessons 课程的课时目录
// @Security BearerAuth
// @Tags 课时
// @Param course_id path int true "课程ID"
// @Success 200 {object} response.Response{data=[]LessonResponse}
// @Router /courses/{course_id}/lessons [get]
func (h *LessonHandler) ListLessons(c *gin.Context) {
	courseID, ok := dto.ParseIDParam(c, "course_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.ListLessons(c.Request.Context(), actor, courseID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// CreateLesson 创建课时
// @Security BearerAuth
// @Tags 课时
// @Router /courses/{course_id}/lessons [post]
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	courseID, ok := dto.ParseIDParam(c, "course_id")
	if !ok {
		return
	}

	var req CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.CreateLesson(c.Request.Context(), actor, courseID, req)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.CreatedResponse(c, resp)
}

// GetLesson 课时详情
// @Security BearerAuth
// @Router /lessons/{lesson_id} [get]
func (h *LessonHandler) GetLesson(c *gin.Context) {
	id, ok := dto.ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.GetLesson(c.Request.Context(), actor, id)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// UpdateLesson 更新课时
// @Security BearerAuth
// @Router /lessons/{lesson_id} [patch]
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id, ok := dto.ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	var req UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.UpdateLesson(c.Request.Context(), actor, id, req)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// DeleteLesson 删除课时
// @Security BearerAuth
// @Router /lessons/{lesson_id} [delete]
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id, ok := dto.ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	if err := h.service.DeleteLesson(c.Request.Context(), actor, id); err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "课时已删除"})
}
