package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// CountOverlappingBookings counts PENDING or CONFIRMED bookings for the
	// unit whose [check_in, check_out) intersects the candidate range.
	CountOverlappingBookings(ctx context.Context, db *gorm.DB, unitID snowflake.ID, checkIn, checkOut time.Time) (int64, error)
	// CountOverlappingBlocks counts availability blocks intersecting the
	// candidate range.
	CountOverlappingBlocks(ctx context.Context, db *gorm.DB, unitID snowflake.ID, checkIn, checkOut time.Time) (int64, error)
}
