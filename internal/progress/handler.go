package progress

import (
	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-gonic/gin"
)

// ProgressHandler 学习进度处理器
type ProgressHandler struct {
	service *ProgressService
	log     *logger.Logger
}

func NewProgressHandler(service *ProgressService, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{service: service, log: log}
}

func parseCourseLesson(c *gin.Context) (uint, uint, bool) {
	courseID, ok := dto.ParseIDParam(c, "course_id")
	if !ok {
		return 0, 0, false
	}
	lessonID, ok := dto.ParseIDParam(c, "lesson_id")
	if !ok {
		return 0, 0, false
	}
	return courseID, lessonID, true
}

// CompleteLesson 完成课时
// @Summary 标记课时完成
// @Tags 学习进度
// @Security BearerAuth
// @Param course_id path int true "课程ID"
// @Param lesson_id path int true "课时ID"
// @Success 200 {object} response.Response{data=ProgressResponse}
// @Router /courses/{course_id}/lessons/{lesson_id}/complete [post]
func (h *ProgressHandler) CompleteLesson(c *gin.Context) {
	courseID, lessonID, ok := parseCourseLesson(c)
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.CompleteLesson(c.Request.Context(), actor, courseID, lessonID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// UncompleteLesson 取消完成
// @Summary 取消课时完成标记
// @Tags 学习进度
// @Security BearerAuth
// @Param course_id path int true "课程ID"
// @Param lesson_id path int true "课时ID"
// @Success 200 {object} response.Response{data=ProgressResponse}
// @Router /courses/{course_id}/lessons/{lesson_id}/complete [delete]
func (h *ProgressHandler) UncompleteLesson(c *gin.Context) {
	courseID, lessonID, ok := parseCourseLesson(c)
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.UncompleteLesson(c.Request.Context(), actor, courseID, lessonID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// GetMyProgress 我的学习进度
// @Summary 我的全部课程进度
// @Tags 学习进度
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]ProgressResponse}
// @Router /progress/my [get]
func (h *ProgressHandler) GetMyProgress(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	result, err := h.service.GetMyProgress(c.Request.Context(), actor.ID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// GetCourseProgress 单个课程进度
// @Summary 课程学习进度
// @Tags 学习进度
// @Security BearerAuth
// @Param course_id path int true "课程ID"
// @Success 200 {object} response.Response{data=ProgressResponse}
// @Router /courses/{course_id}/progress [get]
func (h *ProgressHandler) GetCourseProgress(c *gin.Context) {
	courseID, ok := dto.ParseIDParam(c, "course_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.GetCourseProgress(c.Request.Context(), actor.ID, courseID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}
