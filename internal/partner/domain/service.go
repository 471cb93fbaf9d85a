package domain

import (
	"context"
	"time"
)

type Service interface {
	// Register creates a partner for the given account with a fresh referral
	// code, the platform default rate, and approval pending manual review.
	Register(ctx context.Context, req RegisterRequest) (*Response, error)
	Resolve(ctx context.Context, code string) (*Response, error)
	Stats(ctx context.Context, partnerID string) (*StatsResponse, error)
}

type RegisterRequest struct {
	AccountID string `json:"account_id"`
}

type Response struct {
	ID             string    `json:"id"`
	AccountID      string    `json:"account_id"`
	ReferralCode   string    `json:"referral_code"`
	CommissionRate float64   `json:"commission_rate"`
	Approved       bool      `json:"approved"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type StatsResponse struct {
	Bookings           int64 `json:"bookings"`
	Revenue            int64 `json:"revenue"`
	CommissionsTotal   int64 `json:"commissions_total"`
	CommissionsPaid    int64 `json:"commissions_paid"`
	CommissionsPending int64 `json:"commissions_pending"`
}
