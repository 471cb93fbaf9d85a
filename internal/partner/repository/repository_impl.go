package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	bookingdomain "github.com/staysidelabs/stayside/internal/booking/domain"
	commissiondomain "github.com/staysidelabs/stayside/internal/commission/domain"
	"github.com/staysidelabs/stayside/internal/partner/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, p *domain.Partner) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO partners (id, account_id, referral_code, commission_rate, approved, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.AccountID,
		p.ReferralCode,
		p.CommissionRate,
		p.Approved,
		p.CreatedAt,
		p.UpdatedAt,
	).Error
}

const partnerColumns = `id, account_id, referral_code, commission_rate, approved, created_at, updated_at`

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Partner, error) {
	var p domain.Partner
	err := db.WithContext(ctx).Raw(
		`SELECT `+partnerColumns+` FROM partners WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Partner, error) {
	var p domain.Partner
	err := db.WithContext(ctx).Raw(
		`SELECT `+partnerColumns+` FROM partners WHERE referral_code = ? LIMIT 1`,
		code,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) CodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM partners WHERE referral_code = ?`,
		code,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Stats recomputes the partner dashboard aggregates from persisted rows.
// Cancelled bookings stop counting toward attribution; commissions are
// summed by their own status.
func (r *repo) Stats(ctx context.Context, db *gorm.DB, partnerID snowflake.ID) (domain.StatsRow, error) {
	var booked struct {
		Bookings int64
		Revenue  int64
	}
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS bookings, COALESCE(SUM(total_amount), 0) AS revenue
		 FROM bookings WHERE partner_id = ? AND status <> ?`,
		partnerID,
		bookingdomain.StatusCancelled,
	).Scan(&booked).Error
	if err != nil {
		return domain.StatsRow{}, err
	}

	var earned struct {
		CommissionsTotal   int64
		CommissionsPaid    int64
		CommissionsPending int64
	}
	err = db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) AS commissions_total,
		        COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS commissions_paid,
		        COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS commissions_pending
		 FROM commissions WHERE partner_id = ?`,
		commissiondomain.StatusPaid,
		commissiondomain.StatusPending,
		partnerID,
	).Scan(&earned).Error
	if err != nil {
		return domain.StatsRow{}, err
	}

	return domain.StatsRow{
		Bookings:           booked.Bookings,
		Revenue:            booked.Revenue,
		CommissionsTotal:   earned.CommissionsTotal,
		CommissionsPaid:    earned.CommissionsPaid,
		CommissionsPending: earned.CommissionsPending,
	}, nil
}
