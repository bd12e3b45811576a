package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware is a fixed-window counter per route and actor. The
// actor is the authenticated user when one is set, the client IP otherwise.
// Requests are let through when Redis cannot be reached.
func RateLimitMiddleware(redisClient *redis.Client, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := engagement.Actor(UserID(c), c.ClientIP())
		key := fmt.Sprintf("rate_limit:%s:%s", c.FullPath(), actor)

		ctx := c.Request.Context()
		var incr *redis.IntCmd
		var ttl *redis.DurationCmd
		_, err := redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			ttl = pipe.TTL(ctx, key)
			return nil
		})
		if err != nil {
			log.Warn("Rate limit check failed for %s, allowing request: %v", key, err)
			c.Next()
			return
		}
		count := incr.Val()
		remainingTTL := ttl.Val()

		// a counter without expiry is a new window, or one whose EXPIRE was
		// lost; either way it gets one now
		if remainingTTL < 0 {
			if err := redisClient.Expire(ctx, key, window).Err(); err != nil {
				log.Warn("Failed to set rate limit window for %s: %v", key, err)
			}
			remainingTTL = window
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(remainingTTL.Round(time.Second)/time.Second)))
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too Many Attempts."})
			c.Abort()
			return
		}

		c.Next()
	}
}
