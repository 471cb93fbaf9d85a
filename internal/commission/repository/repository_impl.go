package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/staysidelabs/stayside/internal/commission/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, c *domain.Commission) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO commissions (id, partner_id, booking_id, amount, rate, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.PartnerID,
		c.BookingID,
		c.Amount,
		c.Rate,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
	).Error
}

func (r *repo) FindByBookingID(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) (*domain.Commission, error) {
	var c domain.Commission
	err := db.WithContext(ctx).Raw(
		`SELECT id, partner_id, booking_id, amount, rate, status, created_at, updated_at
		 FROM commissions WHERE booking_id = ? LIMIT 1`,
		bookingID,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}
