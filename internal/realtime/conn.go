package realtime

import (
	"sync"
	"time"

	"terminal-terrace/course-platform/packages/logger"

	"github.com/gorilla/websocket"
)

const (
	outboundQueueSize = 32
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = pongWait * 9 / 10
	maxMessageSize    = 1024
)

// Conn WebSocket 连接：一个写协程负责全部写操作，读循环只处理控制帧
type Conn struct {
	ws        *websocket.Conn
	outbound  chan any
	done      chan struct{}
	closeOnce sync.Once
	userID    uint
	log       *logger.Logger
}

func NewConn(ws *websocket.Conn, userID uint, log *logger.Logger) *Conn {
	return &Conn{
		ws:       ws,
		outbound: make(chan any, outboundQueueSize),
		done:     make(chan struct{}),
		userID:   userID,
		log:      log,
	}
}

func (c *Conn) Enqueue(payload any) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.outbound <- payload:
		return true
	default:
		return false
	}
}

// Close 可重复调用
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// Done 连接关闭后可读
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// WritePump 把队列中的消息写入连接，并定期发送 ping
func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case payload := <-c.outbound:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(payload); err != nil {
				c.log.Debug("写入 WebSocket 失败", "user_id", c.userID, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump 阻塞读取直到连接断开；客户端消息被忽略
func (c *Conn) ReadPump() {
	defer c.Close()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("WebSocket 异常断开", "user_id", c.userID, "error", err)
			}
			return
		}
	}
}
