package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"cocktail_backend/internal/api"
)

// IPLimiter は、クライアントIPごとにウィンドウあたりのリクエスト数を制限します。
// ウィンドウは固定長で、最初のリクエストから window 経過するとカウントがリセットされます。
type IPLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*ipWindow
}

type ipWindow struct {
	count   int
	resetAt time.Time
}

// sweepThreshold を超えたら、新規IPの登録時に期限切れエントリを掃除します。
const sweepThreshold = 4096

// NewIPLimiter は新しいIPLimiterのインスタンスを生成します。
func NewIPLimiter(limit int, window time.Duration) *IPLimiter {
	return &IPLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*ipWindow),
	}
}

// Allow は指定のIPからのリクエストを受け付けるかを判定します。
func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.clients[ip]
	if !ok || now.After(w.resetAt) {
		if len(l.clients) >= sweepThreshold {
			l.sweep(now)
		}
		l.clients[ip] = &ipWindow{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	w.count++
	return w.count <= l.limit
}

// sweep は期限切れのウィンドウを破棄します。呼び出し側でロックを取得していること。
func (l *IPLimiter) sweep(now time.Time) {
	for ip, w := range l.clients {
		if now.After(w.resetAt) {
			delete(l.clients, ip)
		}
	}
}

// Middleware は上限を超えたリクエストに429を返すginミドルウェアを返します。
func (l *IPLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				api.Error("too many requests from this IP, please try again in an hour"))
			return
		}
		c.Next()
	}
}
