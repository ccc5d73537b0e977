package purchase

import (
	"time"

	"terminal-terrace/course-platform/internal/model/purchase"

	"github.com/shopspring/decimal"
)

// InitiateResponse 发起购买结果
type InitiateResponse struct {
	PurchaseID      uint   `json:"purchase_id"`
	ConfirmationURL string `json:"confirmation_url"`
}

// PurchaseResponse 购买记录
type PurchaseResponse struct {
	ID           uint            `json:"id"`
	CourseID     uint            `json:"course_id"`
	CourseTitle  string          `json:"course_title"`
	UserID       uint            `json:"user_id"`
	Status       purchase.Status `json:"status"`
	PurchaseDate time.Time       `json:"purchase_date"`
	PricePaid    decimal.Decimal `json:"price_paid"`
}

// CourseShortInfo 购买详情中的课程摘要
type CourseShortInfo struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	AuthorID uint   `json:"author_id"`
}

// PurchaseDetailResponse 购买详情
type PurchaseDetailResponse struct {
	ID           uint            `json:"id"`
	PricePaid    decimal.Decimal `json:"price_paid"`
	Status       purchase.Status `json:"status"`
	PurchaseDate time.Time       `json:"purchase_date"`
	PaymentID    string          `json:"payment_id"`
	Course       CourseShortInfo `json:"course"`
}

// WebhookResult 回调处理结果，总是以 200 返回给网关
type WebhookResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// PaymentStatusResult 支付完成跳转页查询结果
type PaymentStatusResult struct {
	Status   string `json:"status"` // success, pending, error
	Message  string `json:"message"`
	CourseID *uint  `json:"course_id,omitempty"`
	OrderID  *uint  `json:"order_id,omitempty"`
}

func ToPurchaseDetailResponse(p *purchase.Purchase) PurchaseDetailResponse {
	resp := PurchaseDetailResponse{
		ID:           p.ID,
		PricePaid:    p.PricePaid,
		Status:       p.Status,
		PurchaseDate: p.PurchaseDate,
	}
	if p.PaymentID != nil {
		resp.PaymentID = *p.PaymentID
	}
	if p.Course != nil {
		resp.Course = CourseShortInfo{ID: p.Course.ID, Title: p.Course.Title, AuthorID: p.Course.AuthorID}
	}
	return resp
}
