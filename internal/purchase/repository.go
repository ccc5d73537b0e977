package purchase

import (
	"context"
	"time"

	"terminal-terrace/course-platform/internal/model/purchase"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uint) (*purchase.Purchase, error) {
	var p purchase.Purchase
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID 预加载课程
func (r *PurchaseRepository) FindByID(ctx context.Context, id uint) (*purchase.Purchase, error) {
	var p purchase.Purchase
	if err := r.db.WithContext(ctx).Preload("Course").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByPaymentID 只匹配已分配网关订单号的记录
func (r *PurchaseRepository) FindByPaymentID(ctx context.Context, paymentID string) (*purchase.Purchase, error) {
	var p purchase.Purchase
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("User").
		Where("payment_id IS NOT NULL AND payment_id = ?", paymentID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPending 按 (user_id, course_id) 写入待支付记录并重新读取
// 已成功的记录不会被覆盖
func (r *PurchaseRepository) UpsertPending(ctx context.Context, userID, courseID uint, price decimal.Decimal) (*purchase.Purchase, error) {
	var result purchase.Purchase
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// payment_id 置空，重新发起时旧的网关订单号随之失效
		p := &purchase.Purchase{
			UserID:       userID,
			CourseID:     courseID,
			PaymentID:    nil,
			Status:       purchase.StatusPending,
			PricePaid:    price,
			PurchaseDate: time.Now(),
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payment_id", "status", "price_paid", "purchase_date", "updated_at"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Neq{Column: clause.Column{Table: "purchases", Name: "status"}, Value: purchase.StatusSucceeded},
			}},
		}).Create(p).Error
		if err != nil {
			return err
		}

		// 冲突更新时 p.ID 不可靠，以数据库中的记录为准
		return tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *PurchaseRepository) SetPaymentID(ctx context.Context, id uint, paymentID string) error {
	return r.db.WithContext(ctx).
		Model(&purchase.Purchase{}).
		Where("id = ?", id).
		Update("payment_id", paymentID).Error
}

// Transition 仅当记录仍处于待支付时更新状态，返回是否发生了更新
func (r *PurchaseRepository) Transition(ctx context.Context, id uint, to purchase.Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&purchase.Purchase{}).
		Where("id = ? AND status = ?", id, purchase.StatusPending).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser 最新的在前
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID uint) ([]PurchaseResponse, error) {
	items := make([]PurchaseResponse, 0)
	err := r.db.WithContext(ctx).
		Model(&purchase.Purchase{}).
		Select("purchases.id, purchases.course_id, courses.title AS course_title, purchases.user_id, " +
			"purchases.status, purchases.purchase_date, purchases.price_paid").
		Joins("LEFT JOIN courses ON courses.id = purchases.course_id").
		Where("purchases.user_id = ?", userID).
		Order("purchases.purchase_date DESC, purchases.id DESC").
		Scan(&items).Error
	return items, err
}

// SucceededCourseIDs 用户已成功购买的课程
func (r *PurchaseRepository) SucceededCourseIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&purchase.Purchase{}).
		Where("user_id = ? AND status = ?", userID, purchase.StatusSucceeded).
		Pluck("course_id", &ids).Error
	return ids, err
}
