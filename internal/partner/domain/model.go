// Package domain defines referral partners. A partner's current rate may be
// edited by administrators; recorded commissions keep their own snapshot and
// never see those edits.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Partner struct {
	ID             snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID      snowflake.ID `json:"account_id" gorm:"not null;index"`
	ReferralCode   string       `json:"referral_code" gorm:"type:text;not null;uniqueIndex"`
	CommissionRate float64      `json:"commission_rate" gorm:"type:numeric(5,2);not null"`
	Approved       bool         `json:"approved" gorm:"not null;default:false"`
	CreatedAt      time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Partner) TableName() string { return "partners" }

var (
	ErrPartnerNotFound = errors.New("partner_not_found")
	ErrInvalidID       = errors.New("invalid_partner_id")
	ErrInvalidAccount  = errors.New("invalid_account_id")
)
