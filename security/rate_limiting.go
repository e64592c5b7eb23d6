package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis *redis.Client

	// limit is the max requests per IP per minute.
	limit int64
}

func NewRateLimiter(redisClient *redis.Client, limit int) *RateLimiter {
	return &RateLimiter{redis: redisClient, limit: int64(limit)}
}

// Limit wraps a route handler with a per-IP fixed window throttle and
// a basic bot check. Redis errors fail open: a broken limiter must not
// take the submission endpoint down with it.
func (r *RateLimiter) Limit(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userAgent := e.Request.Header.Get("User-Agent")
		if r.isSuspiciousUserAgent(userAgent) {
			return e.JSON(http.StatusForbidden, map[string]string{
				"error": "Access denied",
			})
		}

		if !r.allow(e.Request.Context(), e.RealIP()) {
			return e.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Too many requests. Please try again later.",
			})
		}

		return next(e)
	}
}

// allow counts one request against the ip's minute window.
func (r *RateLimiter) allow(ctx context.Context, ip string) bool {
	key := fmt.Sprintf("ratelimit:submit:%s", ip)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		r.redis.Expire(ctx, key, time.Minute)
	}

	return count <= r.limit
}

func (r *RateLimiter) isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
