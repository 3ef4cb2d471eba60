package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/civiclens/internal/pkg/response"
)

// APIKey gates write endpoints on the x-api-key header.
func APIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("x-api-key")
		if key == "" {
			response.Unauthorized(c, "API key missing")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			response.Unauthorized(c, "Invalid API key")
			c.Abort()
			return
		}

		c.Next()
	}
}
