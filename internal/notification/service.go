package notification

import (
	"context"
	"errors"
	"time"

	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"

	"github.com/google/uuid"
)

// Sender 实时推送通道，用户不在线时返回 false
type Sender interface {
	Send(userID uint, payload any) bool
}

// Notifier 供其它业务模块发送通知
type Notifier interface {
	SendNotification(ctx context.Context, targetUserID uint, n Notification) error
}

// DataResponse 通知列表
type DataResponse struct {
	TotalCount    int            `json:"total_count"`
	UnreadCount   int64          `json:"unread_count"`
	Notifications []Notification `json:"notifications"`
}

type NotificationService struct {
	store  *Store
	sender Sender
	log    *logger.Logger
}

// NewNotificationService sender 为 nil 时只持久化不推送
func NewNotificationService(store *Store, sender Sender, log *logger.Logger) *NotificationService {
	return &NotificationService{store: store, sender: sender, log: log}
}

// SendNotification 先写入 Redis 再尝试实时推送，推送失败不影响结果
func (s *NotificationService) SendNotification(ctx context.Context, targetUserID uint, n Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	unread, err := s.store.Push(ctx, targetUserID, n)
	if err != nil {
		return err
	}

	if s.sender != nil {
		delivered := s.sender.Send(targetUserID, LiveMessage{
			Event:        EventNotification,
			Notification: n,
			UnreadCount:  unread,
		})
		s.log.Debug("通知已发送", "user_id", targetUserID, "type", n.Type, "live", delivered)
	}
	return nil
}

// GetData 读取通知，不修改已读状态
func (s *NotificationService) GetData(ctx context.Context, userID uint) (*DataResponse, error) {
	items, unread, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &DataResponse{
		TotalCount:    len(items),
		UnreadCount:   unread,
		Notifications: items,
	}, nil
}

// MarkAsReadByID 标记已读，返回新的未读数
func (s *NotificationService) MarkAsReadByID(ctx context.Context, userID uint, id string) (int64, error) {
	unread, err := s.store.MarkRead(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return 0, response.NewNotFound("通知不存在")
		}
		return 0, err
	}
	return unread, nil
}

// Clear 清空全部通知
func (s *NotificationService) Clear(ctx context.Context, userID uint) error {
	return s.store.Clear(ctx, userID)
}
