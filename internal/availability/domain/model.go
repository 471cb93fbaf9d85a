// Package domain defines availability blocks and the canonical overlap test
// used by every date-collision check in the reservation core.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// AvailabilityBlock is an administrator-imposed unavailability window for a
// unit. For overlap purposes it behaves exactly like a live booking but
// carries no price or guest data. Its lifecycle is owned by admin tooling.
type AvailabilityBlock struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	UnitID    snowflake.ID `json:"unit_id" gorm:"not null;index"`
	StartDate time.Time    `json:"start_date" gorm:"type:date;not null"`
	EndDate   time.Time    `json:"end_date" gorm:"type:date;not null"`
	Reason    *string      `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AvailabilityBlock) TableName() string { return "availability_blocks" }

var ErrInvalidRange = errors.New("invalid_range")

// DateOnly normalizes a timestamp to its UTC calendar date. All interval
// math in the reservation core ignores time-of-day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the half-open date intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. The single inequality pair subsumes containment
// and partial overlap; back-to-back stays sharing a boundary date do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
