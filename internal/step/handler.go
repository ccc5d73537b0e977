package step

import (
	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-gonic/gin"
)

type StepHandler struct {
	service *StepService
	log     *logger.Logger
}

func NewStepHandler(service *StepService, log *logger.Logger) *StepHandler {
	return &StepHandler{service: service, log: log}
}

// ListSteps 课时下的步骤
// @Security BearerAuth
// @Tags 步骤
// @Param lesson_id path int true "课时ID"
// @Success 200 {object} response.Response{data=[]StepResponse}
// @Router /lessons/{lesson_id}/steps [get]
func (h *StepHandler) ListSteps(c *gin.Context) {
	lessonID, ok := dto.ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.ListSteps(c.Request.Context(), actor, lessonID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// CreateStep 创建步骤
// @Security BearerAuth
// @Router /lessons/{lesson_id}/steps [post]
func (h *StepHandler) CreateStep(c *gin.Context) {
	lessonID, ok := dto.ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	var req CreateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.CreateStep(c.Request.Context(), actor, lessonID, req)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.CreatedResponse(c, resp)
}

// GetStep 步骤详情
// @Security BearerAuth
// @Router /steps/{step_id} [get]
func (h *StepHandler) GetStep(c *gin.Context) {
	id, ok := dto.ParseIDParam(c, "step_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.GetStep(c.Request.Context(), actor, id)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// UpdateStep 更新步骤
// @Security BearerAuth
// @Router /steps/{step_id} [patch]
func (h *StepHandler) UpdateStep(c *gin.Context) {
	id, ok := dto.ParseIDParam(c, "step_id")
	if !ok {
		return
	}

	var req UpdateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := h.service.UpdateStep(c.Request.Context(), actor, id, req)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// DeleteStep 删除步骤
// @Security BearerAuth
// @Router /steps/{step_id} [delete]
func (h *StepHandler) DeleteStep(c *gin.Context) {
	id, ok := dto.ParseIDParam(c, "step_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	if err := h.service.DeleteStep(c.Request.Context(), actor, id); err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "步骤已删除"})
}
