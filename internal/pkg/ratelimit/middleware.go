package ratelimit

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/civiclens/internal/pkg/response"
)

// Middleware rejects requests over the limit with a 429. The key is the
// authenticated user when present, the client IP otherwise.
func Middleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString("userID")
		if key == "" {
			key = c.ClientIP()
		}

		res, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			response.InternalServerError(c, "Rate limiter unavailable")
			c.Abort()
			return
		}

		if !res.Allowed {
			c.Header("Retry-After", res.RetryAfter.String())
			response.TooManyRequests(c, "Rate limit exceeded. Try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
