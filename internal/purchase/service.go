package purchase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"terminal-terrace/course-platform/internal/course"
	"terminal-terrace/course-platform/internal/model/purchase"
	"terminal-terrace/course-platform/internal/notification"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/packages/email"
	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"

	"gorm.io/gorm"
)

// ReceiptMailer 购买成功邮件
type ReceiptMailer interface {
	SendPurchaseReceipt(to string, data email.PurchaseReceiptData) error
}

// Config 购买流程参数
type Config struct {
	ReturnURL string // 支付完成后的跳转地址
	Currency  string
}

type PurchaseService struct {
	repo     *PurchaseRepository
	courses  *course.CourseRepository
	gateway  Gateway
	notifier notification.Notifier
	mailer   ReceiptMailer
	cfg      Config
	log      *logger.Logger
}

// NewPurchaseService notifier 与 mailer 可以为 nil
func NewPurchaseService(
	repo *PurchaseRepository,
	courses *course.CourseRepository,
	gateway Gateway,
	notifier notification.Notifier,
	mailer ReceiptMailer,
	cfg Config,
	log *logger.Logger,
) *PurchaseService {
	return &PurchaseService{
		repo:     repo,
		courses:  courses,
		gateway:  gateway,
		notifier: notifier,
		mailer:   mailer,
		cfg:      cfg,
		log:      log,
	}
}

// returnURL 在跳转地址上附加 payment_id=<购买记录 ID>
func (s *PurchaseService) returnURL(purchaseID uint) string {
	id := strconv.FormatUint(uint64(purchaseID), 10)
	u, err := url.Parse(s.cfg.ReturnURL)
	if err != nil {
		return s.cfg.ReturnURL + "?payment_id=" + id
	}
	q := u.Query()
	q.Set("payment_id", id)
	u.RawQuery = q.Encode()
	return u.String()
}

// InitiatePurchase 发起购买：写入待支付记录后向网关创建支付
func (s *PurchaseService) InitiatePurchase(ctx context.Context, courseID uint, actor permission.Actor) (*InitiateResponse, error) {
	// 1. 课程存在
	c, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("课程不存在")
		}
		return nil, err
	}

	// 2. 已购买的课程不再发起支付
	existing, err := s.repo.FindByUserAndCourse(ctx, actor.ID, c.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status == purchase.StatusSucceeded {
		return nil, response.NewBadRequest("您已购买该课程")
	}

	// 3. 写入待支付记录，价格取当前课程价格
	p, err := s.repo.UpsertPending(ctx, actor.ID, c.ID, c.Price)
	if err != nil {
		return nil, err
	}
	if p.Status == purchase.StatusSucceeded {
		return nil, response.NewBadRequest("您已购买该课程")
	}

	// 4. 调用支付网关，失败时保留待支付记录
	payment, err := s.gateway.CreatePayment(ctx, PaymentRequest{
		Amount:        c.Price,
		Currency:      s.cfg.Currency,
		Description:   "课程购买: " + c.Title,
		OrderID:       p.ID,
		CustomerEmail: actor.Email,
		ReturnURL:     s.returnURL(p.ID),
	})
	if err != nil {
		s.log.Error("创建支付失败", "purchase_id", p.ID, "course_id", c.ID, "error", err)
		return nil, response.NewGatewayUnavailable("支付服务暂不可用，请稍后重试", response.WithError(err))
	}

	// 5. 记录网关订单号
	if err := s.repo.SetPaymentID(ctx, p.ID, payment.ID); err != nil {
		return nil, err
	}

	s.log.Info("已发起支付", "purchase_id", p.ID, "payment_id", payment.ID, "user_id", actor.ID)
	return &InitiateResponse{PurchaseID: p.ID, ConfirmationURL: payment.ConfirmationURL}, nil
}

// WebhookLogic 解析并处理网关回调，错误只体现在返回体中
func (s *PurchaseService) WebhookLogic(ctx context.Context, raw []byte) WebhookResult {
	event, err := ParseWebhook(raw)
	if err == nil {
		err = s.HandleWebhook(ctx, event.PaymentID, event.Status)
	}
	if err != nil {
		s.log.Warn("支付回调处理失败", "error", err)
		msg := err.Error()
		var be *response.BusinessError
		if errors.As(err, &be) {
			msg = be.Msg
		}
		return WebhookResult{Status: "error", Message: msg}
	}
	return WebhookResult{Status: "ok"}
}

// HandleWebhook 根据网关状态更新购买记录，终态不可再变更
func (s *PurchaseService) HandleWebhook(ctx context.Context, paymentID, status string) error {
	if paymentID == "" {
		return response.NewNotFound("回调缺少支付单号")
	}
	p, err := s.repo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound(fmt.Sprintf("支付单 %s 不存在", paymentID))
		}
		return err
	}

	to := purchase.Status(status)
	if !to.IsTerminal() {
		s.log.Debug("忽略非终态回调", "payment_id", paymentID, "status", status)
		return nil
	}

	if p.Status.IsTerminal() {
		if p.Status != to {
			s.log.Warn("忽略终态变更", "purchase_id", p.ID, "from", p.Status, "to", to)
		}
		return nil
	}

	// 回调没有签名，向网关核对实际状态
	confirmed, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		s.log.Error("核对支付单失败", "payment_id", paymentID, "error", err)
		return response.NewGatewayUnavailable("无法核对支付状态", response.WithError(err))
	}
	if confirmed.Status != status {
		s.log.Warn("回调状态与网关不一致", "payment_id", paymentID, "webhook", status, "gateway", confirmed.Status)
	}
	to = purchase.Status(confirmed.Status)
	if !to.IsTerminal() {
		return nil
	}

	changed, err := s.repo.Transition(ctx, p.ID, to)
	if err != nil {
		return err
	}
	if !changed {
		// 并发回调已经处理
		return nil
	}

	s.log.Info("购买状态已更新", "purchase_id", p.ID, "status", to)
	if to == purchase.StatusSucceeded {
		s.afterSucceeded(ctx, p)
	}
	return nil
}

// afterSucceeded 发送站内通知与邮件，失败只记录日志
func (s *PurchaseService) afterSucceeded(ctx context.Context, p *purchase.Purchase) {
	title := ""
	if p.Course != nil {
		title = p.Course.Title
	}

	if s.notifier != nil {
		n := notification.PurchaseSucceeded(p.CourseID, title, p.ID)
		if err := s.notifier.SendNotification(ctx, p.UserID, n); err != nil {
			s.log.Warn("购买通知发送失败", "purchase_id", p.ID, "error", err)
		}
	}

	if s.mailer != nil && p.User != nil {
		data := email.PurchaseReceiptData{
			Username:    p.User.Username,
			CourseTitle: title,
			Amount:      p.PricePaid.StringFixed(2),
			Currency:    s.cfg.Currency,
			OrderID:     p.ID,
		}
		go func(to string) {
			if err := s.mailer.SendPurchaseReceipt(to, data); err != nil {
				s.log.Warn("发送购买邮件失败", "purchase_id", data.OrderID, "error", err)
			}
		}(p.User.Email)
	}
}

// HandlePaymentStatus 支付跳转页按购买记录 ID 查询状态
func (s *PurchaseService) HandlePaymentStatus(ctx context.Context, orderID uint) PaymentStatusResult {
	p, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("查询支付状态失败", "order_id", orderID, "error", err)
		}
		return PaymentStatusResult{
			Status:  "error",
			Message: "未找到购买记录，如已付款请联系客服",
		}
	}

	courseID := p.CourseID
	if p.Status == purchase.StatusSucceeded {
		title := ""
		if p.Course != nil {
			title = p.Course.Title
		}
		id := p.ID
		return PaymentStatusResult{
			Status:   "success",
			Message:  fmt.Sprintf("课程《%s》购买成功！", title),
			CourseID: &courseID,
			OrderID:  &id,
		}
	}
	return PaymentStatusResult{
		Status:   "pending",
		Message:  "支付处理中，请稍后刷新页面",
		CourseID: &courseID,
	}
}

// GetPaymentDetailByID 只能查看自己的购买记录
func (s *PurchaseService) GetPaymentDetailByID(ctx context.Context, purchaseID, userID uint) (*PurchaseDetailResponse, error) {
	p, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("购买记录不存在")
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, response.NewForbidden("无权查看该购买记录")
	}
	resp := ToPurchaseDetailResponse(p)
	return &resp, nil
}

func (s *PurchaseService) GetMyPurchases(ctx context.Context, userID uint) ([]PurchaseResponse, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetMyCourses 已成功购买的课程
func (s *PurchaseService) GetMyCourses(ctx context.Context, userID uint) ([]course.CourseResponse, error) {
	ids, err := s.repo.SucceededCourseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.courses.FindResponsesByIDs(ctx, ids)
}
