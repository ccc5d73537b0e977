package purchase

import (
	"time"

	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/model/user"

	"github.com/shopspring/decimal"
)

// Status 购买状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusCanceled  Status = "canceled"
)

// IsTerminal 成功与取消都是终态
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusCanceled
}

// Purchase 课程购买记录，(user_id, course_id) 唯一
type Purchase struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;uniqueIndex:idx_purchase_user_course;comment:用户ID" json:"user_id"`
	CourseID     uint            `gorm:"not null;uniqueIndex:idx_purchase_user_course;index;comment:课程ID" json:"course_id"`
	PaymentID    *string         `gorm:"type:varchar(100);index;comment:支付网关订单号，网关返回前为空" json:"payment_id"`
	Status       Status          `gorm:"type:varchar(20);not null;index;comment:pending/succeeded/canceled" json:"status"`
	PricePaid    decimal.Decimal `gorm:"type:numeric(10,2);not null;comment:下单时价格快照" json:"price_paid"`
	PurchaseDate time.Time       `gorm:"not null;comment:下单时间" json:"purchase_date"`
	UpdatedAt    time.Time       `json:"updated_at"`

	User   *user.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course *course.Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Purchase) TableName() string {
	return "purchases"
}
