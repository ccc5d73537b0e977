package course

import (
	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	service *CourseService
	log     *logger.Logger
}

func NewCourseHandler(service *CourseService, log *logger.Logger) *CourseHandler {
	return &CourseHandler{service: service, log: log}
}

// ListCourses 课程列表
// @Summary 已发布课程分页列表
// @Tags 课程
// @Produce json
// @Param page query int false "页码"
// @Param per_page query int false "每页数量，最大100"
// @Param search query string false "标题关键字"
// @Param min_price query string false "最低价格"
// @Param max_price query string false "最高价格"
// @Param author_id query int false "作者ID"
// @Success 200 {object} response.Response{data=ListCoursesResponse}
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var q ListCoursesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	resp, err := h.service.ListCourses(c.Request.Context(), q)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// GetCourse 课程详情
// @Tags 课程
// @Param course_id path int true "课程ID"
// @Success 200 {object} response.Response{data=CourseResponse}
// @Router /courses/{course_id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := dto.ParseIDParam(c, "course_id")
	if !ok {
		return
	}

	var actor *permission.Actor
	if a, ok := middleware.GetActor(c); ok {
		actor = &a
	}

	resp, err := h.service.GetCourse(c.Request.Context(), actor, id)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// CreateCourse 创建课程
// @Security BearerAuth
// @Tags 课程
// @Param request body CreateCourseRequest true "课程信息"
// @Success 201 {object} response.Response{data=CourseResponse}
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.CreateCourse(c.Request.Context(), actor, req)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.CreatedResponse(c, resp)
}

// UpdateCourse 更新课程
// @Security BearerAuth
// @Tags 课程
// @Router /courses/{course_id} [patch]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := dto.ParseIDParam(c, "course_id")
	if !ok {
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.UpdateCourse(c.Request.Context(), actor, id, req)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// DeleteCourse 删除课程
// @Security BearerAuth
// @Tags 课程
// @Router /courses/{course_id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := dto.ParseIDParam(c, "course_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	if err := h.service.DeleteCourse(c.Request.Context(), actor, id); err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "课程已删除"})
}

// Publish 发布课程
// @Security BearerAuth
// @Router /courses/{course_id}/publish [post]
func (h *CourseHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish 下架课程
// @Security BearerAuth
// @Router /courses/{course_id}/unpublish [post]
func (h *CourseHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *CourseHandler) setPublished(c *gin.Context, published bool) {
	id, ok := dto.ParseIDParam(c, "course_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.SetPublished(c.Request.Context(), actor, id, published)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}
