package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"terminal-terrace/course-platform/packages/database"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/redis/go-redis/v9"
)

// 乐观锁冲突时的最大重试次数
const markReadRetries = 3

// ErrNotificationNotFound 列表中没有该通知
var ErrNotificationNotFound = errors.New("notification not found")

// StoreConfig Redis 存储参数
type StoreConfig struct {
	KeyPrefix string
	MaxItems  int
	TTL       time.Duration
}

// Store 每个用户一个通知列表（最新在前）和一个未读计数
// 未读计数是累计值，列表被裁剪后计数不回退
type Store struct {
	rdb *database.RedisClient
	cfg StoreConfig
	log *logger.Logger
}

func NewStore(rdb *database.RedisClient, cfg StoreConfig, log *logger.Logger) *Store {
	return &Store{rdb: rdb, cfg: cfg, log: log}
}

func (s *Store) listKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", s.cfg.KeyPrefix, userID)
}

func (s *Store) countKey(userID uint) string {
	return fmt.Sprintf("%s:unread_count:%d", s.cfg.KeyPrefix, userID)
}

// Push 写入通知并返回新的未读数
func (s *Store) Push(ctx context.Context, userID uint, n Notification) (int64, error) {
	raw, err := json.Marshal(n)
	if err != nil {
		return 0, fmt.Errorf("序列化通知失败: %w", err)
	}

	listKey, countKey := s.listKey(userID), s.countKey(userID)
	var incr *redis.IntCmd
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, listKey, raw)
		pipe.LTrim(ctx, listKey, 0, int64(s.cfg.MaxItems-1))
		pipe.Expire(ctx, listKey, s.cfg.TTL)
		incr = pipe.Incr(ctx, countKey)
		pipe.Expire(ctx, countKey, s.cfg.TTL)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("写入通知失败: %w", err)
	}
	return incr.Val(), nil
}

// List 返回全部保留的通知（最新在前）与未读数
func (s *Store) List(ctx context.Context, userID uint) ([]Notification, int64, error) {
	var (
		items *redis.StringSliceCmd
		count *redis.StringCmd
	)
	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, s.listKey(userID), 0, -1)
		count = pipe.Get(ctx, s.countKey(userID))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("读取通知失败: %w", err)
	}

	unread, err := count.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("读取未读数失败: %w", err)
	}

	result := make([]Notification, 0, len(items.Val()))
	for _, raw := range items.Val() {
		var n Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			s.log.Warn("跳过无法解析的通知", "user_id", userID, "error", err)
			continue
		}
		result = append(result, n)
	}
	return result, unread, nil
}

// MarkRead 标记单条通知为已读
// 已读通知再次标记不改变计数；计数不会小于零
func (s *Store) MarkRead(ctx context.Context, userID uint, id string) (int64, error) {
	listKey, countKey := s.listKey(userID), s.countKey(userID)

	var unread int64
	txf := func(tx *redis.Tx) error {
		raws, err := tx.LRange(ctx, listKey, 0, -1).Result()
		if err != nil {
			return err
		}
		current, err := tx.Get(ctx, countKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		unread = current

		index := -1
		var target Notification
		for i, raw := range raws {
			var n Notification
			if json.Unmarshal([]byte(raw), &n) == nil && n.ID == id {
				index, target = i, n
				break
			}
		}
		if index < 0 {
			return ErrNotificationNotFound
		}
		if target.IsRead {
			return nil
		}

		target.IsRead = true
		updated, err := json.Marshal(target)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LSet(ctx, listKey, int64(index), updated)
			if current > 0 {
				pipe.Decr(ctx, countKey)
			}
			return nil
		})
		if err == nil && current > 0 {
			unread = current - 1
		}
		return err
	}

	for i := 0; i < markReadRetries; i++ {
		err := s.rdb.Watch(ctx, txf, listKey, countKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return unread, err
	}
	return 0, fmt.Errorf("标记已读失败: 并发冲突")
}

// Clear 删除列表与计数
func (s *Store) Clear(ctx context.Context, userID uint) error {
	return s.rdb.Del(ctx, s.listKey(userID), s.countKey(userID)).Err()
}
