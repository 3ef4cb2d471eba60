package geo

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/civiclens/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Divisions godoc
// @Summary Ward boundary polygons
// @Description GeoJSON feature collection of ward division boundaries
// @Tags geo
// @Produce json
// @Success 200 {object} FeatureCollection
// @Router /geo/divisions [get]
func (h *Handler) Divisions(c *gin.Context) {
	response.OK(c, h.repo.Divisions())
}

// WardZones godoc
// @Summary Ward identifier to name mapping
// @Tags geo
// @Produce json
// @Success 200 {object} map[string]string
// @Router /geo/ward-zones [get]
func (h *Handler) WardZones(c *gin.Context) {
	response.OK(c, h.repo.Zones())
}
