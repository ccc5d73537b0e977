// Package realtime 进程内的在线连接表与 WebSocket 推送
package realtime

import (
	"sync"

	"terminal-terrace/course-platform/packages/logger"
)

// Client 一个在线连接
type Client interface {
	// Enqueue 非阻塞投递，队列已满时返回 false
	Enqueue(payload any) bool
	Close()
}

// Registry 用户 ID 到在线连接的映射，每个用户只保留最新的一个连接
type Registry struct {
	mu      sync.RWMutex
	clients map[uint]Client
	log     *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		clients: make(map[uint]Client),
		log:     log,
	}
}

// Connect 注册连接，同一用户的旧连接会被关闭
func (r *Registry) Connect(userID uint, c Client) {
	r.mu.Lock()
	prev := r.clients[userID]
	r.clients[userID] = c
	r.mu.Unlock()

	if prev != nil && prev != c {
		prev.Close()
		r.log.Debug("替换旧连接", "user_id", userID)
	}
}

// Disconnect 只移除与 c 相同的连接，避免误删新连接
func (r *Registry) Disconnect(userID uint, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.clients[userID]; ok && cur == c {
		delete(r.clients, userID)
	}
}

// Send 推送给在线用户；用户离线或队列已满时返回 false
func (r *Registry) Send(userID uint, payload any) bool {
	r.mu.RLock()
	c, ok := r.clients[userID]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if !c.Enqueue(payload) {
		r.log.Warn("推送队列已满，丢弃消息", "user_id", userID)
		return false
	}
	return true
}

func (r *Registry) Online(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[userID]
	return ok
}

// Count 在线连接数
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// CloseAll 关闭全部连接，用于停机
func (r *Registry) CloseAll() {
	r.mu.Lock()
	clients := r.clients
	r.clients = make(map[uint]Client)
	r.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
}
