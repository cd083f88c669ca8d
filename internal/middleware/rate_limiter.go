package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/apierror"
)

// limiter is a per-IP sliding-window counter. Each middleware instance owns
// its own map and purge goroutine, so the login and API limits don't share
// state.
type limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	message  string
}

type visitor struct {
	count     int
	windowEnd time.Time
}

const purgeInterval = 5 * time.Minute

func newLimiter(limit int, window time.Duration, message string) *limiter {
	l := &limiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		message:  message,
	}
	go l.purge()
	return l
}

func (l *limiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.visitors[ip]
	if !ok || now.After(v.windowEnd) {
		v = &visitor{windowEnd: now.Add(l.window)}
		l.visitors[ip] = v
	}
	v.count++
	return v.count <= l.limit, v.windowEnd
}

func (l *limiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New(apierror.CodeValidation, l.message))
			return
		}
		c.Next()
	}
}

// Entries whose window has passed are dropped so IPs that never return
// don't accumulate.
func (l *limiter) purge() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := 0

		l.mu.Lock()
		for ip, v := range l.visitors {
			if now.After(v.windowEnd) {
				delete(l.visitors, ip)
				purged++
			}
		}
		l.mu.Unlock()

		if purged > 0 {
			log.Debug().Int("purged", purged).Msg("rate limiter entries purged")
		}
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimiter(20, time.Minute, "too many login attempts, retry in 1 minute").handler()
}

// RateLimiter is the general per-IP limit applied to the whole API surface.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimiter(limit, window, "too many requests, retry shortly").handler()
}
