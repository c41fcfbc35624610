// FILE: internal/pkg/serverutils/rate_limit.go
package serverutils

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware is a fixed-window limiter backed by redis, keyed by
// authenticated user (fallback: client IP). With no redis client it is a
// no-op so a missing redis never takes the API down.
func RateLimitMiddleware(rdb *redis.Client, name string, limit int, window time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if rdb == nil || limit <= 0 {
			return ctx.Next()
		}

		subject := ctx.IP()
		if userId, ok := ctx.Locals("user_id").(string); ok && userId != "" {
			subject = userId
		}
		key := fmt.Sprintf("ratelimit:%s:%s", name, subject)

		count, err := rdb.Incr(ctx.Context(), key).Result()
		if err != nil {
			// Fail open: a broken redis must not block requests
			log.Printf("[WARN] rate limit incr failed for %s: %v", key, err)
			return ctx.Next()
		}
		if count == 1 {
			rdb.Expire(ctx.Context(), key, window)
		}

		if count > int64(limit) {
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse(429, "Rate limit exceeded, try again later"))
		}

		return ctx.Next()
	}
}
