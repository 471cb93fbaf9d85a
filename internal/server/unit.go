package server

import (
	"github.com/gin-gonic/gin"
)

// @Summary      List Units
// @Description  List active rentable units
// @Tags         units
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /v1/units [get]
func (s *Server) ListUnits(c *gin.Context) {
	resp, err := s.catalogSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Get Unit
// @Description  Fetch a unit by ID
// @Tags         units
// @Produce      json
// @Param        id  path  string  true  "Unit ID"
// @Success      200  {object}  map[string]any
// @Router       /v1/units/{id} [get]
func (s *Server) GetUnit(c *gin.Context) {
	resp, err := s.catalogSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
