package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/staysidelabs/stayside/internal/availability/domain"
	bookingdomain "github.com/staysidelabs/stayside/internal/booking/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// overlapClause renders the canonical half-open interval test for a table's
// date columns. Bind arguments are (checkOut, checkIn). Both booking and
// block queries go through this single predicate so boundary behavior can
// never diverge.
func overlapClause(startCol, endCol string) string {
	return fmt.Sprintf("%s < ? AND %s > ?", startCol, endCol)
}

func (r *repo) CountOverlappingBookings(ctx context.Context, db *gorm.DB, unitID snowflake.ID, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM bookings
		 WHERE unit_id = ? AND status IN (?, ?) AND `+overlapClause("check_in", "check_out"),
		unitID,
		bookingdomain.StatusPending,
		bookingdomain.StatusConfirmed,
		checkOut,
		checkIn,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) CountOverlappingBlocks(ctx context.Context, db *gorm.DB, unitID snowflake.ID, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM availability_blocks
		 WHERE unit_id = ? AND `+overlapClause("start_date", "end_date"),
		unitID,
		checkOut,
		checkIn,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
