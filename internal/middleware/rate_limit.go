// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

// Throttle hands out one token bucket per client IP. Idle buckets are swept
// inline during lookups, so a Throttle carries no background goroutine.
type Throttle struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewThrottle(limit rate.Limit, burst int) *Throttle {
	return &Throttle{
		buckets:   make(map[string]*bucket),
		limit:     limit,
		burst:     burst,
		idleAfter: 3 * time.Minute,
		lastSweep: time.Now(),
	}
}

func (t *Throttle) allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if now.Sub(t.lastSweep) > t.idleAfter {
		for k, b := range t.buckets {
			if now.Sub(b.lastSeen) > t.idleAfter {
				delete(t.buckets, k)
			}
		}
		t.lastSweep = now
	}

	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.Allow()
}

func (t *Throttle) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.allow(c.ClientIP()) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED",
				"Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Tiers sized per surface: browsing traffic gets a wide bucket, credential
// and contact endpoints a narrow one, image uploads the same narrow budget.
var (
	browseThrottle = NewThrottle(rate.Every(50*time.Millisecond), 100) // 20 rps sustained
	tokenThrottle  = NewThrottle(rate.Every(6*time.Second), 10)        // 10 per minute
	uploadThrottle = NewThrottle(rate.Every(6*time.Second), 10)
)

func GeneralRateLimit() gin.HandlerFunc {
	return browseThrottle.Middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	return tokenThrottle.Middleware()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadThrottle.Middleware()
}
