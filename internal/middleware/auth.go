package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/civiclens/internal/features/auth"
	"github.com/xyz-asif/civiclens/internal/pkg/response"
)

// Auth requires a Google bearer token, verifies it, and attaches the
// resulting identity to the request context.
func Auth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header missing")
			c.Abort()
			return
		}

		// Support both "Bearer <token>" (case-insensitive) and a raw token.
		fields := strings.Fields(authHeader)
		var tokenString string
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			tokenString = fields[1]
		} else {
			tokenString = authHeader
		}

		identity, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("userID", identity.ID)
		c.Set("email", identity.Email)
		c.Set("identity", identity)
		c.Next()
	}
}

// IdentityFrom returns the verified identity set by Auth, if any.
func IdentityFrom(c *gin.Context) (*auth.Identity, bool) {
	val, ok := c.Get("identity")
	if !ok {
		return nil, false
	}
	identity, ok := val.(*auth.Identity)
	return identity, ok
}
