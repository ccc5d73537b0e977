package purchase

import (
	"net/http"
	"strconv"

	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/internal/middleware"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler 购买处理器
type PurchaseHandler struct {
	service *PurchaseService
	log     *logger.Logger
}

func NewPurchaseHandler(service *PurchaseService, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{service: service, log: log}
}

// InitiatePurchase 发起购买
// @Summary 购买课程，返回支付确认页地址
// @Tags 购买
// @Security BearerAuth
// @Param course_id path int true "课程ID"
// @Success 200 {object} response.Response{data=InitiateResponse}
// @Failure 503 {object} response.Response
// @Router /courses/{course_id}/purchase [post]
func (h *PurchaseHandler) InitiatePurchase(c *gin.Context) {
	courseID, ok := dto.ParseIDParam(c, "course_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.InitiatePurchase(c.Request.Context(), courseID, actor)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// Webhook 支付网关回调
// @Summary 支付网关回调，始终返回 200
// @Tags 购买
// @Success 200 {object} WebhookResult
// @Router /purchases/webhook [post]
func (h *PurchaseHandler) Webhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusOK, WebhookResult{Status: "error", Message: "读取回调数据失败"})
		return
	}
	c.JSON(http.StatusOK, h.service.WebhookLogic(c.Request.Context(), raw))
}

// PaymentStatus 支付完成跳转页
// @Summary 查询支付结果
// @Tags 购买
// @Param payment_id query int true "购买记录ID"
// @Success 200 {object} PaymentStatusResult
// @Router /purchases/success [get]
func (h *PurchaseHandler) PaymentStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Query("payment_id"), 10, 64)
	if err != nil || orderID == 0 {
		c.JSON(http.StatusOK, PaymentStatusResult{Status: "error", Message: "无效的订单号"})
		return
	}
	c.JSON(http.StatusOK, h.service.HandlePaymentStatus(c.Request.Context(), uint(orderID)))
}

// GetPurchaseDetail 购买详情
// @Summary 查看自己的购买详情
// @Tags 购买
// @Security BearerAuth
// @Param purchase_id path int true "购买记录ID"
// @Success 200 {object} response.Response{data=PurchaseDetailResponse}
// @Router /purchases/{purchase_id} [get]
func (h *PurchaseHandler) GetPurchaseDetail(c *gin.Context) {
	purchaseID, ok := dto.ParseIDParam(c, "purchase_id")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.service.GetPaymentDetailByID(c.Request.Context(), purchaseID, actor.ID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// GetMyPurchases 我的购买记录
// @Summary 我的购买记录
// @Tags 购买
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]PurchaseResponse}
// @Router /purchases/my [get]
func (h *PurchaseHandler) GetMyPurchases(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	result, err := h.service.GetMyPurchases(c.Request.Context(), actor.ID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// GetMyCourses 我购买的课程
// @Summary 我购买的课程
// @Tags 购买
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]course.CourseResponse}
// @Router /courses/my [get]
func (h *PurchaseHandler) GetMyCourses(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	result, err := h.service.GetMyCourses(c.Request.Context(), actor.ID)
	if err != nil {
		dto.HandleError(c, h.log, err)
		return
	}
	dto.SuccessResponse(c, result)
}
