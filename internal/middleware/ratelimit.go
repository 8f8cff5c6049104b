package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"backline/internal/pkg/response"
)

type ipRateLimiter struct {
	mu  sync.Mutex
	ips map[string]*rate.Limiter
	r   rate.Limit
	b   int
}

func (l *ipRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.ips[ip]
	if !ok {
		lim = rate.NewLimiter(l.r, l.b)
		l.ips[ip] = lim
	}
	return lim
}

// RateLimiter throttles per client IP; used on the public booking
// submission endpoint.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	l := &ipRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
	return func(c *gin.Context) {
		if !l.limiter(c.ClientIP()).Allow() {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
