package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/staysidelabs/stayside/internal/catalog/domain"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	unitID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	unit, err := s.repo.FindByID(ctx, s.db, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrUnitNotFound
	}

	resp := toResponse(unit)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	units, err := s.repo.FindAllActive(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Response, 0, len(units))
	for i := range units {
		out = append(out, toResponse(&units[i]))
	}
	return out, nil
}

func toResponse(u *domain.Unit) domain.Response {
	return domain.Response{
		ID:            u.ID.String(),
		Slug:          u.Slug,
		Name:          u.Name,
		Description:   u.Description,
		PricePerNight: u.PricePerNight,
		MaxGuests:     u.MaxGuests,
		Active:        u.Active,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
