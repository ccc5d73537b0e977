package purchase

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 回调与跳转页不需要登录
func RegisterRoutes(router *gin.RouterGroup, handler *PurchaseHandler, auth gin.HandlerFunc) {
	router.POST("/courses/:course_id/purchase", auth, handler.InitiatePurchase)
	router.GET("/courses/my", auth, handler.GetMyCourses)

	purchases := router.Group("/purchases")
	{
		purchases.POST("/webhook", handler.Webhook)
		purchases.GET("/success", handler.PaymentStatus)
		purchases.GET("/my", auth, handler.GetMyPurchases)
		purchases.GET("/:purchase_id", auth, handler.GetPurchaseDetail)
	}
}
