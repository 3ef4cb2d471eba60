package auth

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, verifier *Verifier) {
	handler := NewHandler(verifier)

	google := router.Group("/api/auth/google")
	{
		google.POST("/verify", handler.VerifyGoogle)
	}
}
