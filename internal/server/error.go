package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	availabilitydomain "github.com/staysidelabs/stayside/internal/availability/domain"
	bookingdomain "github.com/staysidelabs/stayside/internal/booking/domain"
	catalogdomain "github.com/staysidelabs/stayside/internal/catalog/domain"
	"github.com/staysidelabs/stayside/internal/identifier"
	partnerdomain "github.com/staysidelabs/stayside/internal/partner/domain"
)

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrRateLimited    = errors.New("rate_limited")
)

// statusFor maps domain errors onto the API's taxonomy: missing references
// are 404, client input errors 400, date contention 409, rate limiting 429,
// infrastructure failures 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalogdomain.ErrUnitNotFound),
		errors.Is(err, bookingdomain.ErrBookingNotFound),
		errors.Is(err, partnerdomain.ErrPartnerNotFound):
		return http.StatusNotFound
	case errors.Is(err, bookingdomain.ErrUnavailable):
		return http.StatusConflict
	case errors.Is(err, bookingdomain.ErrInvalidRange),
		errors.Is(err, bookingdomain.ErrInvalidRequest),
		errors.Is(err, availabilitydomain.ErrInvalidRange),
		errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, partnerdomain.ErrInvalidID),
		errors.Is(err, partnerdomain.ErrInvalidAccount),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, identifier.ErrGenerationExhausted):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func AbortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs.
		message = "internal_error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
