package issues

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/civiclens/internal/features/auth"
	"github.com/xyz-asif/civiclens/internal/middleware"
	"github.com/xyz-asif/civiclens/internal/pkg/ratelimit"
)

func RegisterRoutes(router *gin.Engine, store Store, photos PhotoStore, verifier *auth.Verifier, apiKey string, limiter ratelimit.Limiter) {
	handler := NewHandler(store, photos)

	group := router.Group("/issues")
	{
		group.GET("", handler.List)
		group.GET("/analytics", handler.Analytics)
		group.GET("/:id", handler.Get)

		group.POST("", middleware.APIKey(apiKey), ratelimit.Middleware(limiter), handler.Create)
		group.POST("/upload", middleware.APIKey(apiKey), ratelimit.Middleware(limiter), handler.Upload)
		group.POST("/:id/upvote", middleware.Auth(verifier), handler.Upvote)
	}
}
