package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/packages/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// 超过该时长未出现的客户端会被清理
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter 按客户端 IP 的令牌桶限流
type IPRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	rps       rate.Limit
	burst     int
	lastSweep time.Time
}

// NewIPRateLimiter rps: 每秒补充的令牌数，burst: 桶容量
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		clients:   make(map[string]*clientLimiter),
		rps:       rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

func (l *IPRateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for k, cl := range l.clients {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// Middleware 超出限额时返回 429 并设置 Retry-After
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := l.get(c.ClientIP())
		if !lim.Allow() {
			retryAfter := 1
			if l.rps > 0 {
				retryAfter = int(math.Ceil(1 / float64(l.rps)))
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.TooManyRequests),
				response.WithErrorMessage("请求过于频繁，请稍后再试"),
			))
			c.Abort()
			return
		}
		c.Next()
	}
}
