package service

import (
	"context"
	"fmt"
	"math"
	"net/mail"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	availabilitydomain "github.com/staysidelabs/stayside/internal/availability/domain"
	"github.com/staysidelabs/stayside/internal/booking/domain"
	catalogdomain "github.com/staysidelabs/stayside/internal/catalog/domain"
	"github.com/staysidelabs/stayside/internal/clock"
	commissiondomain "github.com/staysidelabs/stayside/internal/commission/domain"
	"github.com/staysidelabs/stayside/internal/identifier"
	partnerdomain "github.com/staysidelabs/stayside/internal/partner/domain"
	"github.com/staysidelabs/stayside/pkg/db"
)

// createAttempts bounds retries of the insert transaction after losing a
// booking-code race. Availability conflicts are never retried.
const createAttempts = 3

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Codes *identifier.Generator

	Repo            domain.Repository
	AvailabilitySvc availabilitydomain.Service
	CatalogRepo     catalogdomain.Repository
	PartnerRepo     partnerdomain.Repository
	CommissionSvc   commissiondomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	codes *identifier.Generator

	repo            domain.Repository
	availabilitySvc availabilitydomain.Service
	catalogRepo     catalogdomain.Repository
	partnerRepo     partnerdomain.Repository
	commissionSvc   commissiondomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("booking.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		codes:           p.Codes,
		repo:            p.Repo,
		availabilitySvc: p.AvailabilitySvc,
		catalogRepo:     p.CatalogRepo,
		partnerRepo:     p.PartnerRepo,
		commissionSvc:   p.CommissionSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	unitID, err := snowflake.ParseString(strings.TrimSpace(req.UnitID))
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}

	checkIn := availabilitydomain.DateOnly(req.CheckIn)
	checkOut := availabilitydomain.DateOnly(req.CheckOut)
	if !checkIn.Before(checkOut) {
		return nil, fmt.Errorf("%w: check-in must be before check-out", domain.ErrInvalidRange)
	}

	if err := validateGuestContact(req); err != nil {
		return nil, err
	}

	var accountID *snowflake.ID
	if trimmed := strings.TrimSpace(req.AccountID); trimmed != "" {
		parsed, err := snowflake.ParseString(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed account id", domain.ErrInvalidRequest)
		}
		accountID = &parsed
	}

	idempotencyKey := strings.TrimSpace(req.IdempotencyKey)
	if idempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, s.db, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			resp := toResponse(existing)
			return &resp, nil
		}
	}

	unit, err := s.catalogRepo.FindByID(ctx, s.db, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, catalogdomain.ErrUnitNotFound
	}
	if req.Guests < 1 || req.Guests > unit.MaxGuests {
		return nil, fmt.Errorf("%w: unit sleeps at most %d guests", domain.ErrInvalidRange, unit.MaxGuests)
	}

	var partner *partnerdomain.Partner
	if code := strings.ToUpper(strings.TrimSpace(req.ReferralCode)); code != "" {
		partner, err = s.partnerRepo.FindByCode(ctx, s.db, code)
		if err != nil {
			return nil, err
		}
		if partner == nil {
			return nil, partnerdomain.ErrPartnerNotFound
		}
	}

	// Fast pre-check so obviously taken ranges fail before any writes. The
	// authoritative check happens again inside the transaction.
	available, err := s.availabilitySvc.Available(ctx, s.db, unitID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrUnavailable
	}

	totalNights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	totalAmount := int64(totalNights) * unit.PricePerNight

	oracle := identifier.OracleFunc(func(ctx context.Context, code string) (bool, error) {
		return s.repo.CodeExists(ctx, s.db, code)
	})

	var booking *domain.Booking
	var lastErr error

	for attempt := 0; attempt < createAttempts; attempt++ {
		code, err := s.codes.BookingCode(ctx, oracle)
		if err != nil {
			return nil, err
		}

		now := s.clock.Now(ctx)
		candidate := &domain.Booking{
			ID:              s.genID.Generate(),
			BookingCode:     code,
			UnitID:          unitID,
			AccountID:       accountID,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Guests:          req.Guests,
			TotalNights:     totalNights,
			TotalAmount:     totalAmount,
			GuestName:       strings.TrimSpace(req.GuestName),
			GuestEmail:      strings.TrimSpace(req.GuestEmail),
			GuestPhone:      strings.TrimSpace(req.GuestPhone),
			SpecialRequests: req.SpecialRequests,
			Status:          domain.StatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if idempotencyKey != "" {
			candidate.IdempotencyKey = &idempotencyKey
		}
		if req.Metadata != nil {
			candidate.Metadata = datatypes.JSONMap(req.Metadata)
		}
		if partner != nil {
			candidate.PartnerID = &partner.ID
		}

		txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// Serialize competing writers on the unit row, then re-validate
			// the overlap predicate on the same snapshot the insert sees.
			if err := s.repo.LockUnit(ctx, tx, unitID); err != nil {
				return err
			}
			ok, err := s.availabilitySvc.Available(ctx, tx, unitID, checkIn, checkOut)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrUnavailable
			}

			if err := s.repo.Insert(ctx, tx, candidate); err != nil {
				return err
			}

			if partner != nil {
				if _, err := s.commissionSvc.Record(ctx, tx, candidate, partner); err != nil {
					return err
				}
			}
			return nil
		})

		if txErr == nil {
			booking = candidate
			break
		}

		// The EXCLUDE constraint on bookings is the final authority on
		// overlap; treat its violation exactly like the in-tx check.
		if db.IsExclusionViolation(txErr) {
			s.log.Debug("insert rejected by exclusion constraint",
				zap.String("constraint", db.ConstraintName(txErr)),
				zap.String("unit_id", unitID.String()),
			)
			return nil, domain.ErrUnavailable
		}
		if db.IsUniqueViolation(txErr) {
			if idempotencyKey != "" {
				existing, findErr := s.repo.FindByIdempotencyKey(ctx, s.db, idempotencyKey)
				if findErr != nil {
					return nil, findErr
				}
				if existing != nil {
					resp := toResponse(existing)
					return &resp, nil
				}
			}
			// Booking code lost a race between generation and commit; a
			// fresh candidate gets a fresh code.
			lastErr = txErr
			continue
		}
		return nil, txErr
	}

	if booking == nil {
		return nil, fmt.Errorf("%w: %v", identifier.ErrGenerationExhausted, lastErr)
	}

	s.log.Info("booking created",
		zap.String("booking_code", booking.BookingCode),
		zap.String("unit_id", booking.UnitID.String()),
		zap.Time("check_in", booking.CheckIn),
		zap.Time("check_out", booking.CheckOut),
		zap.Int64("total_amount", booking.TotalAmount),
	)

	resp := toResponse(booking)
	return &resp, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Response, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrBookingNotFound
	}

	booking, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}

	resp := toResponse(booking)
	return &resp, nil
}

func (s *Service) ListByAccount(ctx context.Context, accountID string) ([]domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(accountID))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed account id", domain.ErrInvalidRequest)
	}

	bookings, err := s.repo.ListByAccount(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Response, 0, len(bookings))
	for i := range bookings {
		out = append(out, toResponse(&bookings[i]))
	}
	return out, nil
}

func (s *Service) Cancel(ctx context.Context, code string) (*domain.Response, error) {
	booking, err := s.repo.FindByCode(ctx, s.db, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	if booking.Status == domain.StatusCancelled {
		resp := toResponse(booking)
		return &resp, nil
	}

	now := s.clock.Now(ctx)
	if err := s.repo.UpdateStatus(ctx, s.db, booking.ID, domain.StatusCancelled, now); err != nil {
		return nil, err
	}

	booking.Status = domain.StatusCancelled
	booking.UpdatedAt = now

	s.log.Info("booking cancelled", zap.String("booking_code", booking.BookingCode))

	resp := toResponse(booking)
	return &resp, nil
}

func validateGuestContact(req domain.CreateRequest) error {
	if strings.TrimSpace(req.GuestName) == "" {
		return fmt.Errorf("%w: guest name is required", domain.ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.GuestEmail)); err != nil {
		return fmt.Errorf("%w: provide a valid guest email", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.GuestPhone) == "" {
		return fmt.Errorf("%w: guest phone is required", domain.ErrInvalidRequest)
	}
	return nil
}

func toResponse(b *domain.Booking) domain.Response {
	resp := domain.Response{
		ID:              b.ID.String(),
		BookingCode:     b.BookingCode,
		UnitID:          b.UnitID.String(),
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
		Guests:          b.Guests,
		TotalNights:     b.TotalNights,
		TotalAmount:     b.TotalAmount,
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		GuestPhone:      b.GuestPhone,
		SpecialRequests: b.SpecialRequests,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.AccountID != nil {
		v := b.AccountID.String()
		resp.AccountID = &v
	}
	if b.PartnerID != nil {
		v := b.PartnerID.String()
		resp.PartnerID = &v
	}
	if b.Metadata != nil {
		resp.Metadata = map[string]any(b.Metadata)
	}
	return resp
}
