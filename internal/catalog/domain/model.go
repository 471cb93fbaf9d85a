// Package domain holds the unit catalog read model. Units are owned by the
// catalog subsystem; the reservation core only reads them.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Unit is a rentable apartment record.
type Unit struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	Slug          string       `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Name          string       `json:"name" gorm:"type:text;not null"`
	Description   *string      `json:"description,omitempty" gorm:"type:text"`
	PricePerNight int64        `json:"price_per_night" gorm:"not null"`
	MaxGuests     int          `json:"max_guests" gorm:"not null"`
	Active        bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Unit) TableName() string { return "units" }

var (
	ErrUnitNotFound = errors.New("unit_not_found")
	ErrInvalidID    = errors.New("invalid_unit_id")
)
