package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"terminal-terrace/course-platform/packages/database"
	"terminal-terrace/course-platform/packages/logger"
)

const publishTimeout = 2 * time.Second

// envelope Redis 频道上的消息
type envelope struct {
	UserID  uint            `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
}

// Relay 通过 Redis 发布订阅在多个实例间转发推送
// Send 只负责发布，每个实例的 Run 把收到的消息投递到本地 Registry
type Relay struct {
	rdb     *database.RedisClient
	channel string
	local   *Registry
	log     *logger.Logger
}

func NewRelay(rdb *database.RedisClient, channel string, local *Registry, log *logger.Logger) *Relay {
	return &Relay{rdb: rdb, channel: channel, local: local, log: log}
}

// Send 发布成功即返回 true，不代表用户在线
func (r *Relay) Send(userID uint, payload any) bool {
	raw, err := json.Marshal(payload)
	if err != nil {
		r.log.Error("序列化推送消息失败", "user_id", userID, "error", err)
		return false
	}
	msg, err := json.Marshal(envelope{UserID: userID, Payload: raw})
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := r.rdb.Publish(ctx, r.channel, msg).Err(); err != nil {
		r.log.Warn("发布推送消息失败", "user_id", userID, "error", err)
		return false
	}
	return true
}

// Run 订阅频道并转发到本地连接，直到 ctx 结束
func (r *Relay) Run(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer sub.Close()

	// 确认订阅已建立
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("订阅 %s 失败: %w", r.channel, err)
	}
	r.log.Info("实时推送转发已启动", "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
				r.log.Warn("无法解析的转发消息", "error", err)
				continue
			}
			r.local.Send(env.UserID, env.Payload)
		}
	}
}
