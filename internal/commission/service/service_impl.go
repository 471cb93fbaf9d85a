package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bookingdomain "github.com/staysidelabs/stayside/internal/booking/domain"
	"github.com/staysidelabs/stayside/internal/clock"
	"github.com/staysidelabs/stayside/internal/commission/domain"
	partnerdomain "github.com/staysidelabs/stayside/internal/partner/domain"
	"github.com/staysidelabs/stayside/pkg/db"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("commission.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, handle *gorm.DB, booking *bookingdomain.Booking, partner *partnerdomain.Partner) (*domain.Commission, error) {
	existing, err := s.repo.FindByBookingID(ctx, handle, booking.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := s.clock.Now(ctx)
	commission := &domain.Commission{
		ID:        s.genID.Generate(),
		PartnerID: partner.ID,
		BookingID: booking.ID,
		Amount:    domain.AmountFor(booking.TotalAmount, partner.CommissionRate),
		Rate:      partner.CommissionRate,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, handle, commission); err != nil {
		// A concurrent writer may have recorded the commission between the
		// lookup and the insert; the unique booking_id constraint decides.
		if db.IsUniqueViolation(err) {
			return s.repo.FindByBookingID(ctx, handle, booking.ID)
		}
		return nil, fmt.Errorf("insert commission: %w", err)
	}

	s.log.Info("commission recorded",
		zap.String("booking_id", commission.BookingID.String()),
		zap.String("partner_id", commission.PartnerID.String()),
		zap.Int64("amount", commission.Amount),
		zap.Float64("rate", commission.Rate),
	)

	return commission, nil
}
