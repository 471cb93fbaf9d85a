// Package domain defines the booking aggregate. A booking is created exactly
// once by the reservation service; dates and amounts are never recomputed
// after creation.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking occupies the half-open interval [CheckIn, CheckOut) for its unit.
type Booking struct {
	ID              snowflake.ID      `json:"id" gorm:"primaryKey"`
	BookingCode     string            `json:"booking_code" gorm:"type:text;not null;uniqueIndex"`
	UnitID          snowflake.ID      `json:"unit_id" gorm:"not null;index"`
	AccountID       *snowflake.ID     `json:"account_id,omitempty" gorm:"index"`
	PartnerID       *snowflake.ID     `json:"partner_id,omitempty" gorm:"index"`
	CheckIn         time.Time         `json:"check_in" gorm:"type:date;not null"`
	CheckOut        time.Time         `json:"check_out" gorm:"type:date;not null"`
	Guests          int               `json:"guests" gorm:"not null"`
	TotalNights     int               `json:"total_nights" gorm:"not null"`
	TotalAmount     int64             `json:"total_amount" gorm:"not null"`
	GuestName       string            `json:"guest_name" gorm:"type:text;not null"`
	GuestEmail      string            `json:"guest_email" gorm:"type:text;not null"`
	GuestPhone      string            `json:"guest_phone" gorm:"type:text;not null"`
	SpecialRequests *string           `json:"special_requests,omitempty" gorm:"type:text"`
	IdempotencyKey  *string           `json:"-" gorm:"uniqueIndex"`
	Metadata        datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	Status          BookingStatus     `json:"status" gorm:"type:text;not null"`
	CreatedAt       time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Booking) TableName() string { return "bookings" }

var (
	// ErrUnavailable means the requested range collides with a live booking
	// or an availability block. Recoverable by picking different dates;
	// never retried here.
	ErrUnavailable = errors.New("unit_unavailable")
	// ErrInvalidRange covers check-in not strictly before check-out as well
	// as a guest count outside the unit's limits.
	ErrInvalidRange    = errors.New("invalid_range")
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrBookingNotFound = errors.New("booking_not_found")
)
