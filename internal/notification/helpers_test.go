package notification

import (
	"sync"
	"testing"
	"time"

	"terminal-terrace/course-platform/internal/testutils"
	"terminal-terrace/course-platform/packages/logger"

	"github.com/alicebob/miniredis/v2"
)

type sentMessage struct {
	userID  uint
	payload any
}

// recordingSender 记录所有推送，online 控制返回值
type recordingSender struct {
	mu     sync.Mutex
	online bool
	sent   []sentMessage
}

func (s *recordingSender) Send(userID uint, payload any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMessage{userID: userID, payload: payload})
	return s.online
}

func (s *recordingSender) messages() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMessage(nil), s.sent...)
}

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	rdb, mr := testutils.SetupTestRedis(t)
	store := NewStore(rdb, StoreConfig{
		KeyPrefix: "notifications",
		MaxItems:  20,
		TTL:       30 * 24 * time.Hour,
	}, logger.NewNop())
	return store, mr
}
