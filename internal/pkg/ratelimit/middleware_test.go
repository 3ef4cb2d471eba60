package ratelimit

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterWindow(t *testing.T) {
	lim := NewMemory(2, time.Minute)
	ctx := context.Background()

	res, err := lim.Allow(ctx, "a")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = lim.Allow(ctx, "a")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = lim.Allow(ctx, "a")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.Greater(t, res.RetryAfter, time.Duration(0))

	// Separate keys have separate windows.
	res, err = lim.Allow(ctx, "b")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	lim.Reset("a")
	res, err = lim.Allow(ctx, "a")
	require.NoError(t, err)
	require.True(t, res.Allowed)
}

func TestMiddleware_RateLimitExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := NewMemory(0, time.Minute) // limit 0 -> always deny
	r := gin.New()
	r.Use(Middleware(lim))
	r.POST("/issues", func(c *gin.Context) {
		c.JSON(201, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/issues", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 429, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "Rate limit exceeded. Try again later.", body["error"])
}
