package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, booking *Booking) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Booking, error)
	FindByIdempotencyKey(ctx context.Context, db *gorm.DB, key string) (*Booking, error)
	ListByAccount(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]Booking, error)
	CodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error)
	// LockUnit takes a row lock on the unit so concurrent create attempts
	// for the same unit serialize before re-validating the overlap predicate.
	LockUnit(ctx context.Context, db *gorm.DB, unitID snowflake.ID) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status BookingStatus, updatedAt time.Time) error
}
