package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, commission *Commission) error
	FindByBookingID(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) (*Commission, error)
}
