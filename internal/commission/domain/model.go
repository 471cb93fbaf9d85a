// Package domain defines commissions. The rate on a commission is a snapshot
// taken when the booking was recorded; later edits to the partner's rate must
// never change historical rows.
package domain

import (
	"errors"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CommissionStatus string

const (
	StatusPending CommissionStatus = "PENDING"
	StatusPaid    CommissionStatus = "PAID"
)

// Commission is one-to-one with its booking.
type Commission struct {
	ID        snowflake.ID     `json:"id" gorm:"primaryKey"`
	PartnerID snowflake.ID     `json:"partner_id" gorm:"not null;index"`
	BookingID snowflake.ID     `json:"booking_id" gorm:"not null;uniqueIndex"`
	Amount    int64            `json:"amount" gorm:"not null"`
	Rate      float64          `json:"rate" gorm:"type:numeric(5,2);not null"`
	Status    CommissionStatus `json:"status" gorm:"type:text;not null"`
	CreatedAt time.Time        `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time        `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Commission) TableName() string { return "commissions" }

var ErrCommissionNotFound = errors.New("commission_not_found")

// AmountFor computes the commission owed on a booking total at the given
// percentage rate, rounded to the nearest smallest currency unit.
func AmountFor(totalAmount int64, rate float64) int64 {
	return int64(math.Round(float64(totalAmount) * rate / 100.0))
}
