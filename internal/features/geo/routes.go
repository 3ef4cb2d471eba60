package geo

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, repo *Repository) {
	handler := NewHandler(repo)

	group := router.Group("/geo")
	{
		group.GET("/divisions", handler.Divisions)
		group.GET("/ward-zones", handler.WardZones)
	}
}
