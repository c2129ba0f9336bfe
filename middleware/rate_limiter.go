package middleware

import (
	"net/http"
	"sync"
	"time"

	"fieldserve/config"
	"fieldserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const fallbackRequestsPerMin = 100

// ipLimiters keeps one token bucket per client address.
type ipLimiters struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	perMin  int
}

func newIPLimiters(perMin int) *ipLimiters {
	if perMin <= 0 {
		perMin = fallbackRequestsPerMin
	}
	return &ipLimiters{
		buckets: make(map[string]*rate.Limiter),
		perMin:  perMin,
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin)
		l.buckets[ip] = bucket
	}
	return bucket
}

// RateLimitMiddleware caps requests per client IP. The per-minute budget comes
// from MAX_REQUESTS_PER_MIN; the limiter set is sized when the middleware is
// built, so config must be loaded first.
func RateLimitMiddleware() gin.HandlerFunc {
	limiters := newIPLimiters(config.AppConfig.MaxRequestsPerMin)
	return func(c *gin.Context) {
		ip := clientIP(c)
		if !limiters.get(ip).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip))
			utils.JSONError(c, http.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded. Try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
