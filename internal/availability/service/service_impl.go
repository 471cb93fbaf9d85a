package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/staysidelabs/stayside/internal/availability/domain"
	catalogdomain "github.com/staysidelabs/stayside/internal/catalog/domain"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Repo        domain.Repository
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        domain.Repository
	catalogRepo catalogdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("availability.service"),
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
	}
}

func (s *Service) CheckAvailability(ctx context.Context, req domain.CheckRequest) (bool, error) {
	unitID, err := snowflake.ParseString(req.UnitID)
	if err != nil {
		return false, catalogdomain.ErrInvalidID
	}

	checkIn := domain.DateOnly(req.CheckIn)
	checkOut := domain.DateOnly(req.CheckOut)
	if !checkIn.Before(checkOut) {
		return false, domain.ErrInvalidRange
	}

	unit, err := s.catalogRepo.FindByID(ctx, s.db, unitID)
	if err != nil {
		return false, err
	}
	if unit == nil {
		return false, catalogdomain.ErrUnitNotFound
	}

	return s.Available(ctx, s.db, unitID, checkIn, checkOut)
}

// Available is a pure read and safe to run concurrently. Callers that need a
// race-free answer pass their transaction handle and lock the unit first.
func (s *Service) Available(ctx context.Context, db *gorm.DB, unitID snowflake.ID, checkIn, checkOut time.Time) (bool, error) {
	bookings, err := s.repo.CountOverlappingBookings(ctx, db, unitID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	if bookings > 0 {
		return false, nil
	}

	blocks, err := s.repo.CountOverlappingBlocks(ctx, db, unitID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return blocks == 0, nil
}
