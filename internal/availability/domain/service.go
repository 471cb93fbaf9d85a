package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Service interface {
	// CheckAvailability answers the presentation layer's availability query.
	// The referenced unit must exist.
	CheckAvailability(ctx context.Context, req CheckRequest) (bool, error)
	// Available runs the overlap check against the given handle so callers
	// can re-validate inside their own transaction.
	Available(ctx context.Context, db *gorm.DB, unitID snowflake.ID, checkIn, checkOut time.Time) (bool, error)
}

type CheckRequest struct {
	UnitID   string    `json:"unit_id"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}
