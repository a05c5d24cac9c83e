package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "construction-pm/internal/transport/http/response"
)

func tooMany(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, resp.Error(http.StatusTooManyRequests, ""))
}

// RateLimit is a global token bucket.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if !lim.Allow() {
			tooMany(c)
			return
		}
		c.Next()
	}
}

const visitorIdle = 3 * time.Minute

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

type ipLimiter struct {
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	visitors map[string]*visitor
	swept    time.Time
	now      func() time.Time
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.swept) > visitorIdle {
		for k, v := range l.visitors {
			if now.Sub(v.seen) > visitorIdle {
				delete(l.visitors, k)
			}
		}
		l.swept = now
	}
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.seen = now
	l.mu.Unlock()
	return v.lim.AllowN(now, 1)
}

// RateLimitPerIP keeps one token bucket per client IP. Buckets idle for a
// few minutes are dropped.
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	l := &ipLimiter{rps: rps, burst: burst, visitors: map[string]*visitor{}, now: time.Now}
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			tooMany(c)
			return
		}
		c.Next()
	}
}
