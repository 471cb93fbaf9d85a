package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	partnerdomain "github.com/staysidelabs/stayside/internal/partner/domain"
)

type registerPartnerRequest struct {
	AccountID string `json:"account_id"`
}

// @Summary      Register Partner
// @Description  Register a referral partner for an account
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body registerPartnerRequest true "Register Partner Request"
// @Success      201  {object}  map[string]any
// @Router       /v1/partners [post]
func (s *Server) RegisterPartner(c *gin.Context) {
	var req registerPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.partnerSvc.Register(c.Request.Context(), partnerdomain.RegisterRequest{
		AccountID: strings.TrimSpace(req.AccountID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, resp)
}

// @Summary      Resolve Partner
// @Description  Resolve a referral code to its partner
// @Tags         partners
// @Produce      json
// @Param        code  path  string  true  "Referral Code"
// @Success      200  {object}  map[string]any
// @Router       /v1/referrals/{code} [get]
func (s *Server) ResolvePartner(c *gin.Context) {
	resp, err := s.partnerSvc.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Partner Stats
// @Description  Aggregate bookings and commissions for a partner
// @Tags         partners
// @Produce      json
// @Param        id  path  string  true  "Partner ID"
// @Success      200  {object}  map[string]any
// @Router       /v1/partners/{id}/stats [get]
func (s *Server) GetPartnerStats(c *gin.Context) {
	resp, err := s.partnerSvc.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
