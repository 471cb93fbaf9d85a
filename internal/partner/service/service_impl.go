package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/staysidelabs/stayside/internal/clock"
	"github.com/staysidelabs/stayside/internal/config"
	"github.com/staysidelabs/stayside/internal/identifier"
	"github.com/staysidelabs/stayside/internal/partner/domain"
	"github.com/staysidelabs/stayside/pkg/db"
)

// registerAttempts bounds how often a register call retries after losing an
// insert race on the referral code.
const registerAttempts = 3

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Codes *identifier.Generator
	Cfg   config.Config
	Repo  domain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	codes       *identifier.Generator
	defaultRate float64
	repo        domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("partner.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		codes:       p.Codes,
		defaultRate: p.Cfg.Referral.DefaultCommissionRate,
		repo:        p.Repo,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Response, error) {
	accountID, err := snowflake.ParseString(strings.TrimSpace(req.AccountID))
	if err != nil {
		return nil, domain.ErrInvalidAccount
	}

	oracle := identifier.OracleFunc(func(ctx context.Context, code string) (bool, error) {
		return s.repo.CodeExists(ctx, s.db, code)
	})

	now := s.clock.Now(ctx)
	var lastErr error
	for attempt := 0; attempt < registerAttempts; attempt++ {
		code, err := s.codes.ReferralCode(ctx, oracle)
		if err != nil {
			return nil, err
		}

		partner := &domain.Partner{
			ID:             s.genID.Generate(),
			AccountID:      accountID,
			ReferralCode:   code,
			CommissionRate: s.defaultRate,
			Approved:       false,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		// The unique index on referral_code is the authoritative reserve; a
		// concurrent register can consume the code after the oracle check.
		if err := s.repo.Insert(ctx, s.db, partner); err != nil {
			if db.IsUniqueViolation(err) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("insert partner: %w", err)
		}

		s.log.Info("partner registered",
			zap.String("partner_id", partner.ID.String()),
			zap.String("referral_code", partner.ReferralCode),
		)
		resp := toResponse(partner)
		return &resp, nil
	}

	return nil, fmt.Errorf("%w: %v", identifier.ErrGenerationExhausted, lastErr)
}

func (s *Service) Resolve(ctx context.Context, code string) (*domain.Response, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrPartnerNotFound
	}

	partner, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrPartnerNotFound
	}

	resp := toResponse(partner)
	return &resp, nil
}

func (s *Service) Stats(ctx context.Context, partnerID string) (*domain.StatsResponse, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(partnerID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	partner, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrPartnerNotFound
	}

	row, err := s.repo.Stats(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	return &domain.StatsResponse{
		Bookings:           row.Bookings,
		Revenue:            row.Revenue,
		CommissionsTotal:   row.CommissionsTotal,
		CommissionsPaid:    row.CommissionsPaid,
		CommissionsPending: row.CommissionsPending,
	}, nil
}

func toResponse(p *domain.Partner) domain.Response {
	return domain.Response{
		ID:             p.ID.String(),
		AccountID:      p.AccountID.String(),
		ReferralCode:   p.ReferralCode,
		CommissionRate: p.CommissionRate,
		Approved:       p.Approved,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
