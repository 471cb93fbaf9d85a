package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/staysidelabs/stayside/internal/booking/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, b *domain.Booking) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO bookings (id, booking_code, unit_id, account_id, partner_id, check_in, check_out,
		                       guests, total_nights, total_amount, guest_name, guest_email, guest_phone,
		                       special_requests, idempotency_key, metadata, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.BookingCode,
		b.UnitID,
		b.AccountID,
		b.PartnerID,
		b.CheckIn,
		b.CheckOut,
		b.Guests,
		b.TotalNights,
		b.TotalAmount,
		b.GuestName,
		b.GuestEmail,
		b.GuestPhone,
		b.SpecialRequests,
		b.IdempotencyKey,
		b.Metadata,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	).Error
}

const bookingColumns = `id, booking_code, unit_id, account_id, partner_id, check_in, check_out,
	guests, total_nights, total_amount, guest_name, guest_email, guest_phone,
	special_requests, idempotency_key, metadata, status, created_at, updated_at`

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Booking, error) {
	var b domain.Booking
	err := db.WithContext(ctx).Raw(
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_code = ? LIMIT 1`,
		code,
	).Scan(&b).Error
	if err != nil {
		return nil, err
	}
	if b.ID == 0 {
		return nil, nil
	}
	return &b, nil
}

func (r *repo) FindByIdempotencyKey(ctx context.Context, db *gorm.DB, key string) (*domain.Booking, error) {
	var b domain.Booking
	err := db.WithContext(ctx).Raw(
		`SELECT `+bookingColumns+` FROM bookings WHERE idempotency_key = ? LIMIT 1`,
		key,
	).Scan(&b).Error
	if err != nil {
		return nil, err
	}
	if b.ID == 0 {
		return nil, nil
	}
	return &b, nil
}

func (r *repo) ListByAccount(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]domain.Booking, error) {
	var items []domain.Booking
	err := db.WithContext(ctx).Raw(
		`SELECT `+bookingColumns+` FROM bookings WHERE account_id = ? ORDER BY created_at DESC`,
		accountID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM bookings WHERE booking_code = ?`,
		code,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) LockUnit(ctx context.Context, db *gorm.DB, unitID snowflake.ID) error {
	var id snowflake.ID
	return db.WithContext(ctx).Raw(
		`SELECT id FROM units WHERE id = ? FOR UPDATE`,
		unitID,
	).Scan(&id).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.BookingStatus, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		updatedAt,
		id,
	).Error
}
