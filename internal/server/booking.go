package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	availabilitydomain "github.com/staysidelabs/stayside/internal/availability/domain"
	bookingdomain "github.com/staysidelabs/stayside/internal/booking/domain"
)

type createBookingRequest struct {
	UnitID          string         `json:"unit_id"`
	AccountID       string         `json:"account_id,omitempty"`
	CheckIn         string         `json:"check_in"`
	CheckOut        string         `json:"check_out"`
	Guests          int            `json:"guests"`
	GuestName       string         `json:"guest_name"`
	GuestEmail      string         `json:"guest_email"`
	GuestPhone      string         `json:"guest_phone"`
	SpecialRequests *string        `json:"special_requests,omitempty"`
	ReferralCode    string         `json:"referral_code,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

func idempotencyKeyFromHeader(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader("Idempotency-Key"))
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(value))
}

// @Summary      Create Booking
// @Description  Reserve a unit for a date range
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Idempotency Key"
// @Param        request body createBookingRequest true "Create Booking Request"
// @Success      201  {object}  map[string]any
// @Router       /v1/bookings [post]
func (s *Server) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		AbortWithError(c, bookingdomain.ErrInvalidRange)
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		AbortWithError(c, bookingdomain.ErrInvalidRange)
		return
	}

	resp, err := s.bookingSvc.Create(c.Request.Context(), bookingdomain.CreateRequest{
		UnitID:          strings.TrimSpace(req.UnitID),
		AccountID:       strings.TrimSpace(req.AccountID),
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		SpecialRequests: req.SpecialRequests,
		ReferralCode:    req.ReferralCode,
		Metadata:        req.Metadata,
		IdempotencyKey:  idempotencyKeyFromHeader(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, resp)
}

// @Summary      Get Booking
// @Description  Fetch a booking by its human-shareable code
// @Tags         bookings
// @Produce      json
// @Param        code  path  string  true  "Booking Code"
// @Success      200  {object}  map[string]any
// @Router       /v1/bookings/{code} [get]
func (s *Server) GetBooking(c *gin.Context) {
	resp, err := s.bookingSvc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Bookings
// @Description  List bookings for an account
// @Tags         bookings
// @Produce      json
// @Param        account_id  query  string  true  "Account ID"
// @Success      200  {object}  map[string]any
// @Router       /v1/bookings [get]
func (s *Server) ListBookings(c *gin.Context) {
	accountID := strings.TrimSpace(c.Query("account_id"))
	if accountID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.bookingSvc.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Cancel Booking
// @Description  Cancel a booking, releasing its date range
// @Tags         bookings
// @Produce      json
// @Param        code  path  string  true  "Booking Code"
// @Success      200  {object}  map[string]any
// @Router       /v1/bookings/{code}/cancel [post]
func (s *Server) CancelBooking(c *gin.Context) {
	resp, err := s.bookingSvc.Cancel(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Check Availability
// @Description  Report whether a unit is free for a date range
// @Tags         availability
// @Produce      json
// @Param        unit_id    query  string  true  "Unit ID"
// @Param        check_in   query  string  true  "Check-in date (YYYY-MM-DD)"
// @Param        check_out  query  string  true  "Check-out date (YYYY-MM-DD)"
// @Success      200  {object}  map[string]any
// @Router       /v1/availability [get]
func (s *Server) CheckAvailability(c *gin.Context) {
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		AbortWithError(c, availabilitydomain.ErrInvalidRange)
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		AbortWithError(c, availabilitydomain.ErrInvalidRange)
		return
	}

	available, err := s.availabilitySvc.CheckAvailability(c.Request.Context(), availabilitydomain.CheckRequest{
		UnitID:   strings.TrimSpace(c.Query("unit_id")),
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{"available": available})
}
