package notification

import (
	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *NotificationService
	log     *logger.Logger
}

func NewNotificationHandler(service *NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, log: log}
}

// GetNotifications 当前用户的通知
// @Security BearerAuth
// @Tags 通知
// @Success 200 {object} response.Response{data=DataResponse}
// @Router /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	resp, err := h.service.GetData(c.Request.Context(), actor.ID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, resp)
}

// MarkAsRead 标记单条通知为已读
// @Security BearerAuth
// @Tags 通知
// @Param id path string true "通知ID"
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	unread, err := h.service.MarkAsReadByID(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "已标记为已读", "unread_count": unread})
}

// ClearNotifications 清空通知
// @Security BearerAuth
// @Tags 通知
// @Router /notifications [delete]
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	if err := h.service.Clear(c.Request.Context(), actor.ID); err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "通知已清空"})
}
