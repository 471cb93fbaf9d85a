package domain

import (
	"context"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	GetByCode(ctx context.Context, code string) (*Response, error)
	ListByAccount(ctx context.Context, accountID string) ([]Response, error)
	Cancel(ctx context.Context, code string) (*Response, error)
}

type CreateRequest struct {
	UnitID          string         `json:"unit_id"`
	AccountID       string         `json:"account_id,omitempty"`
	CheckIn         time.Time      `json:"check_in"`
	CheckOut        time.Time      `json:"check_out"`
	Guests          int            `json:"guests"`
	GuestName       string         `json:"guest_name"`
	GuestEmail      string         `json:"guest_email"`
	GuestPhone      string         `json:"guest_phone"`
	SpecialRequests *string        `json:"special_requests,omitempty"`
	ReferralCode    string         `json:"referral_code,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	IdempotencyKey  string         `json:"-"`
}

type Response struct {
	ID              string         `json:"id"`
	BookingCode     string         `json:"booking_code"`
	UnitID          string         `json:"unit_id"`
	AccountID       *string        `json:"account_id,omitempty"`
	PartnerID       *string        `json:"partner_id,omitempty"`
	CheckIn         time.Time      `json:"check_in"`
	CheckOut        time.Time      `json:"check_out"`
	Guests          int            `json:"guests"`
	TotalNights     int            `json:"total_nights"`
	TotalAmount     int64          `json:"total_amount"`
	GuestName       string         `json:"guest_name"`
	GuestEmail      string         `json:"guest_email"`
	GuestPhone      string         `json:"guest_phone"`
	SpecialRequests *string        `json:"special_requests,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	Status          BookingStatus  `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
