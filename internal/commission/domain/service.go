package domain

import (
	"context"

	"gorm.io/gorm"

	bookingdomain "github.com/staysidelabs/stayside/internal/booking/domain"
	partnerdomain "github.com/staysidelabs/stayside/internal/partner/domain"
)

type Service interface {
	// Record snapshots the partner's rate, computes the amount, and persists
	// a PENDING commission on the caller's handle. Idempotent per booking:
	// an existing commission is returned unchanged.
	Record(ctx context.Context, db *gorm.DB, booking *bookingdomain.Booking, partner *partnerdomain.Partner) (*Commission, error)
}
