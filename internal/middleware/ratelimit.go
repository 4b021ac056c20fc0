package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/floorsheet/internal/domain/dto"
)

// client is one IP's request count within the current window.
type client struct {
	windowStart time.Time
	count       int
}

// In-memory fixed-window limiter state, shared by every RateLimiter.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	rateLimiterLock sync.Mutex
)

// RateLimiter allows up to `limit` requests per `window` (default 60 per
// minute) per client IP. Excess requests get 429 with an ErrorResponse body
// and a Retry-After header.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		evictStale(now)
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.windowStart) > window {
			cl = &client{windowStart: now}
			clients[ip] = cl
		}
		cl.count++
		remaining := limit - cl.count
		retryAfter := window - now.Sub(cl.windowStart)
		rateLimiterLock.Unlock()

		if remaining < 0 {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}

// evictStale drops clients whose window ended long ago. Callers hold rateLimiterLock.
func evictStale(now time.Time) {
	for ip, cl := range clients {
		if now.Sub(cl.windowStart) > 2*window {
			delete(clients, ip)
		}
	}
}
