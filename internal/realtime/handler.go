package realtime

import (
	"net/http"

	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/packages/authsdk"
	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Handler WebSocket 入口
type Handler struct {
	registry *Registry
	secret   string
	upgrader websocket.Upgrader
	log      *logger.Logger
}

// NewHandler allowedOrigins 为空时不校验 Origin
func NewHandler(registry *Registry, secret string, allowedOrigins []string, log *logger.Logger) *Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &Handler{
		registry: registry,
		secret:   secret,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(origins) == 0 || origin == "" || origins[origin]
			},
		},
	}
}

// ServeWS 认证后升级为 WebSocket，连接断开前一直阻塞
// @Summary 实时通知
// @Tags 通知
// @Param token query string false "访问令牌（无法设置 header 时使用）"
// @Router /notifications/ws [get]
func (h *Handler) ServeWS(c *gin.Context) {
	u, err := authsdk.GetUserFromRequest(c.Request, h.secret)
	if err != nil {
		dto.ErrorResponse(c, response.NewUnauthorized("无效的认证令牌"))
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已经写入了错误响应
		h.log.Debug("WebSocket 升级失败", "user_id", u.UserID, "error", err)
		return
	}

	conn := NewConn(ws, u.UserID, h.log)
	h.registry.Connect(u.UserID, conn)
	h.log.Info("WebSocket 已连接", "user_id", u.UserID, "online", h.registry.Count())

	go conn.WritePump()
	conn.ReadPump()

	h.registry.Disconnect(u.UserID, conn)
	h.log.Info("WebSocket 已断开", "user_id", u.UserID)
}
