package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
)

// RateLimiter is a per-client sliding window limiter
type RateLimiter struct {
	mu         sync.Mutex
	hits       map[string][]time.Time
	maxRequest int
	window     time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

func NewRateLimiter(maxRequest int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:       make(map[string][]time.Time),
		maxRequest: maxRequest,
		window:     window,
		now:        time.Now,
	}
}

// Allow records a hit for key. When the window is full it reports false and
// how long until the oldest hit leaves the window.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, retryAfter time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > rl.window {
		rl.sweep(now)
	}

	hits := rl.prune(rl.hits[key], now)
	if len(hits) >= rl.maxRequest {
		rl.hits[key] = hits
		return false, 0, rl.window - now.Sub(hits[0])
	}

	rl.hits[key] = append(hits, now)
	return true, rl.maxRequest - len(hits) - 1, 0
}

func (rl *RateLimiter) prune(hits []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(hits) && now.Sub(hits[i]) >= rl.window {
		i++
	}
	return hits[i:]
}

// sweep drops clients whose hits have all expired
func (rl *RateLimiter) sweep(now time.Time) {
	for key, hits := range rl.hits {
		if valid := rl.prune(hits, now); len(valid) > 0 {
			rl.hits[key] = valid
		} else {
			delete(rl.hits, key)
		}
	}
	rl.lastSweep = now
}

// RateLimit rejects clients above maxRequest requests per window with
// RATE_LIMITED and a Retry-After header
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, remaining, retryAfter := limiter.Allow(ip)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.maxRequest))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			logger.WarnWithContext(c.Request.Context(), "Rate limit exceeded").
				String("client_ip", ip).
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Int("max_requests", limiter.maxRequest).
				Int("retry_after_seconds", seconds).
				Log()

			c.Header(constants.HeaderRetryAfter, strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				constants.BuildErrorResponse(apperrors.CodeRateLimited, constants.MsgTooManyRequests, nil))
			return
		}

		c.Next()
	}
}
