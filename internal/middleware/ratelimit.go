package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const rateLimitPrefix = "rl"

// RateLimit is a fixed-window limiter keyed by client IP. Requests pass
// untouched when rdb is nil or redis errors.
func RateLimit(rdb *redis.Client, window time.Duration, limit int, log *zap.Logger) gin.HandlerFunc {
	if rdb == nil || window <= 0 || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		now := time.Now()
		bucket := now.UnixMilli() / window.Milliseconds()
		key := rateLimitPrefix + ":" + c.ClientIP() + ":" + strconv.FormatInt(bucket, 10)

		ctx := c.Request.Context()
		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.PExpire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		count := incr.Val()
		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			windowEnd := time.UnixMilli((bucket + 1) * window.Milliseconds())
			secs := int(math.Ceil(windowEnd.Sub(now).Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			abort(c, http.StatusTooManyRequests, "too_many_requests", "Too many requests, please try again later.")
			return
		}

		c.Next()
	}
}
