package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// IssueRateLimiter caps how many issues a single user may create per day.
// Counts live in Redis under <prefix>:<user_id> with a 24h TTL set on the
// first increment. Runs after AuthMiddleware.
func IssueRateLimiter(client *redis.Client, queuePrefix string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		userKey := queuePrefix + ":" + identity.ID

		count, err := client.Incr(ctx, userKey).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			c.Abort()
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			if err := client.Expire(ctx, userKey, 24*time.Hour).Err(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := client.TTL(ctx, userKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
