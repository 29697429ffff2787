package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobfolio/profile-intake/internal/ratelimit"
)

// RateLimit enforces the share limiter per client fingerprint. Denied
// requests get a 429 with a Retry-After header and a retryAfterSeconds
// field so form clients can show a countdown.
func RateLimit(
	limiter *ratelimit.Limiter,
	maxRequests int,
	window time.Duration,
	onDenied func(),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientFingerprint(c.Request)

		result := limiter.Check(key, maxRequests, window, time.Now())
		if !result.Allowed {
			if onDenied != nil {
				onDenied()
			}
			c.Header("Retry-After", strconv.Itoa(result.RetryAfterSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":                false,
				"message":           "Too many submissions. Please try again later.",
				"retryAfterSeconds": result.RetryAfterSeconds,
			})
			return
		}

		c.Next()
	}
}
