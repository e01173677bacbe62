package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// userRateLimiter hands out one token bucket per user. Suggestion endpoints
// sit in front of a slow AI backend; a polling client must not be able to
// hammer the generation pipeline.
type userRateLimiter struct {
	mu       sync.Mutex
	limiters map[uint]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func (l *userRateLimiter) limiter(userID uint) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = lim
	}
	return lim
}

// PerUserRateLimit returns middleware allowing r requests/second with the
// given burst, per authenticated user. Must run after RequireLogin.
func PerUserRateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	rl := &userRateLimiter{
		limiters: make(map[uint]*rate.Limiter),
		limit:    r,
		burst:    burst,
	}
	return func(c *gin.Context) {
		if !rl.limiter(CurrentUserID(c)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "Too many requests, slow down.",
			})
			return
		}
		c.Next()
	}
}
