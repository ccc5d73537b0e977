// Package notification 站内通知：Redis 持久化的有界列表与未读计数，
// 写入后通过 Sender 实时推送给在线用户
package notification

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type 通知类型
type Type string

const (
	TypeNewLike           Type = "new_like"
	TypePurchaseSucceeded Type = "purchase_succeeded"
)

// 评论摘要的最大字符数
const commentPreviewRunes = 50

// Notification 通知信封，Data 的结构由 Type 决定
type Notification struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	IsRead    bool            `json:"is_read"`
	Data      json.RawMessage `json:"data"`
}

// NewLikeData 评论被点赞
type NewLikeData struct {
	FromUser    string `json:"from_user"`
	FromUserID  uint   `json:"from_user_id"`
	CommentID   uint   `json:"comment_id"`
	CommentText string `json:"comment_text"`
}

// PurchaseSucceededData 课程购买成功
type PurchaseSucceededData struct {
	CourseID    uint   `json:"course_id"`
	CourseTitle string `json:"course_title"`
	PurchaseID  uint   `json:"purchase_id"`
}

func newNotification(t Type, data any) Notification {
	raw, err := json.Marshal(data)
	if err != nil {
		// 以上载荷均为基础类型，不会失败
		panic(fmt.Sprintf("notification: marshal %s payload: %v", t, err))
	}
	return Notification{Type: t, Data: raw}
}

// NewLike 构造点赞通知，评论内容截取前 50 个字符
func NewLike(fromUser string, fromUserID, commentID uint, commentText string) Notification {
	return newNotification(TypeNewLike, NewLikeData{
		FromUser:    fromUser,
		FromUserID:  fromUserID,
		CommentID:   commentID,
		CommentText: Preview(commentText),
	})
}

// PurchaseSucceeded 构造购买成功通知
func PurchaseSucceeded(courseID uint, courseTitle string, purchaseID uint) Notification {
	return newNotification(TypePurchaseSucceeded, PurchaseSucceededData{
		CourseID:    courseID,
		CourseTitle: courseTitle,
		PurchaseID:  purchaseID,
	})
}

// Preview 超过 50 个字符时截断并追加省略号
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= commentPreviewRunes {
		return text
	}
	return string(runes[:commentPreviewRunes]) + "..."
}

// AsNewLike 类型不匹配或数据损坏时 ok 为 false
func (n Notification) AsNewLike() (NewLikeData, bool) {
	var d NewLikeData
	return d, n.Type == TypeNewLike && json.Unmarshal(n.Data, &d) == nil
}

// AsPurchaseSucceeded 类型不匹配或数据损坏时 ok 为 false
func (n Notification) AsPurchaseSucceeded() (PurchaseSucceededData, bool) {
	var d PurchaseSucceededData
	return d, n.Type == TypePurchaseSucceeded && json.Unmarshal(n.Data, &d) == nil
}

// LiveMessage 推送到 WebSocket 的消息
type LiveMessage struct {
	Event        string       `json:"event"`
	Notification Notification `json:"notification"`
	UnreadCount  int64        `json:"unread_count"`
}

// EventNotification LiveMessage.Event 的取值
const EventNotification = "notification"
